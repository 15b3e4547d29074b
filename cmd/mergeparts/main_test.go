package main

import (
	"reflect"
	"testing"
)

func TestSortByPartSuffix(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "glob order already correct",
			in:   []string{"doc_part0000.mp3", "doc_part0001.mp3", "doc_part0002.mp3"},
			want: []string{"doc_part0000.mp3", "doc_part0001.mp3", "doc_part0002.mp3"},
		},
		{
			name: "shuffled numeric order",
			in:   []string{"doc_part0010.mp3", "doc_part0002.mp3", "doc_part0001.mp3"},
			want: []string{"doc_part0001.mp3", "doc_part0002.mp3", "doc_part0010.mp3"},
		},
		{
			name: "unpadded suffixes sort numerically",
			in:   []string{"doc_part10.mp3", "doc_part2.mp3"},
			want: []string{"doc_part2.mp3", "doc_part10.mp3"},
		},
		{
			name: "unnumbered files keep order after numbered parts",
			in:   []string{"intro.mp3", "doc_part0001.mp3", "outro.mp3", "doc_part0000.mp3"},
			want: []string{"doc_part0000.mp3", "doc_part0001.mp3", "intro.mp3", "outro.mp3"},
		},
		{
			name: "extension-less files inside a dotted directory",
			in:   []string{"audio.v2/doc_part0001", "audio.v2/doc_part0000"},
			want: []string{"audio.v2/doc_part0000", "audio.v2/doc_part0001"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sortByPartSuffix(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("sortByPartSuffix(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
