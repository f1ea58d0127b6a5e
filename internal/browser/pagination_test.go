package browser

import (
	"reflect"
	"testing"
)

func TestPageCount(t *testing.T) {
	tests := []struct {
		total int
		want  int
	}{
		{total: 0, want: 0},
		{total: 1, want: 1},
		{total: 10, want: 1},
		{total: 11, want: 2},
		{total: 19, want: 2},
		{total: 20, want: 2},
		{total: 21, want: 3},
		{total: -4, want: 0},
	}
	for _, tt := range tests {
		if got := PageCount(tt.total); got != tt.want {
			t.Errorf("PageCount(%d) = %d, want %d", tt.total, got, tt.want)
		}
	}
}

func TestPageLinks(t *testing.T) {
	tests := []struct {
		name  string
		state ViewState
		want  []int
	}{
		{name: "all mode", state: ViewState{Mode: ModeAll, TotalQuestions: 25}, want: []int{1, 2, 3}},
		{name: "no questions", state: ViewState{Mode: ModeAll, TotalQuestions: 0}, want: []int{}},
		{name: "category mode", state: ViewState{Mode: ModeByCategory, TotalQuestions: 25}, want: nil},
		{name: "search mode", state: ViewState{Mode: ModeBySearch, TotalQuestions: 3}, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PageLinks(tt.state); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PageLinks() = %#v, want %#v", got, tt.want)
			}
		})
	}
}
