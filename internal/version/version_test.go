// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package version

import "testing"

func TestString(t *testing.T) {
	defer func(pre, build string) {
		PreRelease, BuildMetadata = pre, build
	}(PreRelease, BuildMetadata)

	tests := []struct {
		pre, build string
		want       string
	}{
		{"", "", "0.3.0"},
		{"beta", "", "0.3.0-beta"},
		{"beta.1", "", "0.3.0-beta1"},
		{"rc", "linux.amd64", "0.3.0-rc+linux.amd64"},
		{"", "g1a2b_dirty", "0.3.0+g1a2bdirty"},
	}
	for _, test := range tests {
		PreRelease, BuildMetadata = test.pre, test.build
		if got := String(); got != test.want {
			t.Errorf("pre %q build %q: got %q, want %q", test.pre,
				test.build, got, test.want)
		}
	}
}
