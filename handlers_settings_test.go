package main

import (
	"reflect"
	"testing"
)

func TestRemoveString(t *testing.T) {
	tests := []struct {
		name   string
		list   []string
		target string
		want   []string
	}{
		{"removes match", []string{"a", "b", "c"}, "b", []string{"a", "c"}},
		{"no match", []string{"a", "b"}, "x", []string{"a", "b"}},
		{"removes duplicates", []string{"a", "b", "a"}, "a", []string{"b"}},
		{"empty", nil, "a", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := removeString(tt.list, tt.target)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("removeString(%v, %q) = %v, want %v", tt.list, tt.target, got, tt.want)
			}
		})
	}
}

func TestContainsString(t *testing.T) {
	if !containsString([]string{"a", "b"}, "b") {
		t.Error("containsString missed existing element")
	}
	if containsString([]string{"a", "b"}, "c") {
		t.Error("containsString found missing element")
	}
	if containsString(nil, "a") {
		t.Error("containsString found element in nil list")
	}
}
