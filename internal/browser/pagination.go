package browser

import "errors"

// PageSize is the number of questions the store returns per page
const PageSize = 10

// ErrPaginationUnavailable is returned by SelectPage outside ModeAll. Category and
// search results are unpaginated, so page links are not offered there.
var ErrPaginationUnavailable = errors.New("pagination is only available when listing all questions")

// PageCount is ceil(total / PageSize); zero questions means zero pages
func PageCount(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + PageSize - 1) / PageSize
}

// PageLinks lists the selectable pages for s, 1..PageCount in ModeAll and none otherwise
func PageLinks(s ViewState) []int {
	if s.Mode != ModeAll {
		return nil
	}
	n := PageCount(s.TotalQuestions)
	links := make([]int, 0, n)
	for i := 1; i <= n; i++ {
		links = append(links, i)
	}
	return links
}
