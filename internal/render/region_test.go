package render

import "testing"

func TestClassifyPartition(t *testing.T) {
	for _, count := range []int{21, 25, 29, 57, 177} {
		seen := map[RegionKind]map[[2]int]bool{
			EyeTopLeft: {}, EyeTopRight: {}, EyeBottomLeft: {},
		}
		body, origins := 0, 0
		for row := 0; row < count; row++ {
			for col := 0; col < count; col++ {
				reg := Classify(row, col, count)
				if reg.Origin() {
					origins++
				}
				if !reg.Kind.IsEye() {
					if reg.RelRow != 0 || reg.RelCol != 0 {
						t.Fatalf("count %d: body cell (%d,%d) has local coords", count, row, col)
					}
					body++
					continue
				}
				if reg.RelRow < 0 || reg.RelRow >= EyeSize || reg.RelCol < 0 || reg.RelCol >= EyeSize {
					t.Fatalf("count %d: (%d,%d) local (%d,%d) out of range", count, row, col, reg.RelRow, reg.RelCol)
				}
				key := [2]int{reg.RelRow, reg.RelCol}
				if seen[reg.Kind][key] {
					t.Fatalf("count %d: %s local %v seen twice", count, reg.Kind, key)
				}
				seen[reg.Kind][key] = true
			}
		}
		for kind, cells := range seen {
			if len(cells) != EyeSize*EyeSize {
				t.Fatalf("count %d: %s has %d cells", count, kind, len(cells))
			}
		}
		if body != count*count-3*EyeSize*EyeSize {
			t.Fatalf("count %d: %d body cells", count, body)
		}
		if origins != 3 {
			t.Fatalf("count %d: %d eye origins", count, origins)
		}
	}
}

func TestClassifyOrigins(t *testing.T) {
	cases := []struct {
		row, col int
		want     RegionKind
	}{
		{0, 0, EyeTopLeft},
		{0, 18, EyeTopRight},
		{18, 0, EyeBottomLeft},
		{18, 18, Body},
		{7, 7, Body},
	}
	for _, tc := range cases {
		reg := Classify(tc.row, tc.col, 25)
		if reg.Kind != tc.want {
			t.Fatalf("Classify(%d,%d) = %s, want %s", tc.row, tc.col, reg.Kind, tc.want)
		}
		if tc.want != Body && !reg.Origin() {
			t.Fatalf("Classify(%d,%d) should be an eye origin", tc.row, tc.col)
		}
	}
}
