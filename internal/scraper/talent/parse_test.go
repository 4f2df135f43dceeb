package talent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultsHTML = `<html><body>
<section data-testid="jobcard-container-1">
  <h2 color="#30183F">Backend Engineer</h2>
  <a href="/view?id=42">view</a>
  <span color="#691F74">Initech</span>
  <span color="#222222">Denver, CO</span>
  <span>Last updated: 2 days ago</span>
  <span class="sc-fcd630a4-5 x">Work on Go services. Show more details here</span>
  <div>Pay: $45 - $60 per hour</div>
</section>
<section data-testid="jobcard-container-2">
  <h2 class="sc-fcd630a4-20">Frontend Engineer</h2>
  <a class="sc-d93925ca-5" href="https://www.talent.com/view?id=43">view</a>
  <span class="sc-fcd630a4-12">Hooli</span>
</section>
<section data-testid="jobcard-container-3"><span>no title here</span></section>
<nav class="sc-5ec0130d-0">
  <a title="1" href="/jobs?k=go&p=1">1</a>
  <a title="2" href="/jobs?k=go&p=2&showSignInModal=true">2</a>
  <a href="/jobs?k=go&p=9"><svg></svg></a>
</nav>
</body></html>`

func TestSearchURL(t *testing.T) {
	assert.Equal(t,
		"https://www.talent.com/jobs?k=python-developer&l=USA&date=1",
		SearchURL("python developer", "USA"))
}

func TestParseListings(t *testing.T) {
	got, err := ParseListings(resultsHTML, "USA")
	require.NoError(t, err)
	require.Len(t, got, 2)

	first := got[0]
	assert.Equal(t, "Backend Engineer", first.Title)
	assert.Equal(t, "Initech", first.Company)
	assert.Equal(t, "Denver, CO", first.Location)
	assert.Equal(t, "/view?id=42", first.URL)
	assert.Equal(t, "Last updated: 2 days ago", first.PostedText)
	assert.Equal(t, "Work on Go services.", first.Description)
	assert.Equal(t, "$45 - $60 per hour", first.Salary)
	assert.Equal(t, Name, first.Source)

	second := got[1]
	assert.Equal(t, "Frontend Engineer", second.Title)
	assert.Equal(t, "Hooli", second.Company)
	assert.Equal(t, "USA", second.Location)
	assert.Equal(t, "https://www.talent.com/view?id=43", second.URL)
	assert.Empty(t, second.PostedText)
	assert.Empty(t, second.Salary)
}

func TestParseDetail(t *testing.T) {
	long := strings.Repeat("We build things. ", 10)
	desc, err := ParseDetail(`<div class="sc-fcd630a4-10 other">` + long + `</div>`)
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSpace(long), desc)

	desc, err = ParseDetail(`<main>Short main content</main>`)
	require.NoError(t, err)
	assert.Equal(t, "Short main content", desc, "falls back to the main content area")
}

func TestNextPageHref(t *testing.T) {
	href, ok := NextPageHref(resultsHTML, 1)
	require.True(t, ok)
	assert.Equal(t, "https://www.talent.com/jobs?k=go&p=2", href, "sign-in modal trigger is stripped")

	href, ok = NextPageHref(resultsHTML, 5)
	require.True(t, ok)
	assert.Equal(t, "https://www.talent.com/jobs?k=go&p=9", href, "falls back to the arrow link")

	_, ok = NextPageHref(`<html><body></body></html>`, 1)
	assert.False(t, ok)
}
