package store

import (
	"reflect"
	"testing"
)

func TestDiffIDs(t *testing.T) {
	tests := []struct {
		name       string
		current    []uint
		desired    []uint
		wantAdd    []uint
		wantRemove []uint
	}{
		{"replace one", []uint{1, 2}, []uint{2, 3}, []uint{3}, []uint{1}},
		{"unchanged", []uint{1, 2}, []uint{2, 1}, nil, nil},
		{"clear", []uint{1, 2}, nil, nil, []uint{1, 2}},
		{"from empty", nil, []uint{3, 1, 3}, []uint{1, 3}, nil},
		{"ignores zero", nil, []uint{0, 4}, []uint{4}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			add, remove := diffIDs(tt.current, tt.desired)
			if !reflect.DeepEqual(add, tt.wantAdd) {
				t.Errorf("add = %v, want %v", add, tt.wantAdd)
			}
			if !reflect.DeepEqual(remove, tt.wantRemove) {
				t.Errorf("remove = %v, want %v", remove, tt.wantRemove)
			}
		})
	}
}

func TestUniqueIDs(t *testing.T) {
	got := uniqueIDs([]uint{5, 1, 5, 0, 3, 1})
	if !reflect.DeepEqual(got, []uint{1, 3, 5}) {
		t.Errorf("Expected [1 3 5], got %v", got)
	}
}
