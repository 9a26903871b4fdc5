package htmlutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripTags(t *testing.T) {
	cases := []struct {
		fragment string
		expect   string
	}{
		{
			fragment: `<a href="http://www.senate.gov/">Image courtesy of the Member</a>`,
			expect:   "Image courtesy of the Member",
		},
		{
			fragment: `Courtesy of the <b>U.S. House</b> Photography Office`,
			expect:   "Courtesy of the U.S. House Photography Office",
		},
		{
			fragment: "plain text",
			expect:   "plain text",
		},
		{
			fragment: "",
			expect:   "",
		},
		{
			fragment: "<p>spread\n  across\n  lines</p>",
			expect:   "spread across lines",
		},
	}

	for _, test := range cases {
		require.Equal(t, test.expect, StripTags(test.fragment))
	}
}
