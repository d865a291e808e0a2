package components

import twmerge "github.com/Oudwins/tailwind-merge-go"

const toastBase = "pointer-events-auto fixed bottom-4 right-4 z-50 flex w-80 items-start gap-3 rounded-lg border p-4 shadow-lg bg-white text-slate-900"

var toastVariants = map[Variant]string{
	VariantSuccess: "border-emerald-500 bg-emerald-50 text-emerald-900",
	VariantError:   "border-red-500 bg-red-50 text-red-900",
	VariantWarning: "border-amber-500 bg-amber-50 text-amber-900",
	VariantInfo:    "border-sky-500 bg-sky-50 text-sky-900",
}

// ToastClass merges the base, variant and caller classes; later ones win.
func ToastClass(v Variant, extra string) string {
	return twmerge.Merge(toastBase, toastVariants[v], extra)
}
