package window

import "testing"

func TestDeriveIdentity(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{
			name:     "Hyphen separator",
			title:    "Report.docx - WordProcessor",
			expected: "report.docx",
		},
		{
			name:     "Em dash separator",
			title:    "inbox — Mail",
			expected: "inbox",
		},
		{
			name:     "Pipe separator",
			title:    "Dashboard | Grafana",
			expected: "dashboard",
		},
		{
			name:     "First separator wins",
			title:    "notes - scratch | editor",
			expected: "notes",
		},
		{
			name:     "No separator",
			title:    "Terminal",
			expected: "terminal",
		},
		{
			name:     "Noise token stripped",
			title:    "Firefox Browser",
			expected: "firefox",
		},
		{
			name:     "All noise",
			title:    "Browser Window",
			expected: "",
		},
		{
			name:     "Whitespace only",
			title:    "   ",
			expected: "",
		},
		{
			name:     "Empty title",
			title:    "",
			expected: "",
		},
		{
			name:     "Left segment is noise",
			title:    "Window - Settings",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DeriveIdentity(tt.title)
			if result != tt.expected {
				t.Errorf("DeriveIdentity(%q) = %q, want %q", tt.title, result, tt.expected)
			}
		})
	}
}

func TestDeriveIdentityIdempotent(t *testing.T) {
	titles := []string{
		"Report.docx - WordProcessor",
		"inbox — Mail",
		"Dashboard | Grafana",
		"Terminal",
		"Firefox Browser",
	}

	for _, title := range titles {
		once := DeriveIdentity(title)
		twice := DeriveIdentity(once)
		if once != twice {
			t.Errorf("DeriveIdentity not idempotent for %q: %q != %q", title, once, twice)
		}
	}
}

func TestDeriveIdentityDeterministic(t *testing.T) {
	const title = "Report.docx - WordProcessor"
	first := DeriveIdentity(title)
	for i := 0; i < 10; i++ {
		if got := DeriveIdentity(title); got != first {
			t.Fatalf("DeriveIdentity(%q) produced %q on run %d, first run produced %q", title, got, i, first)
		}
	}
}

func TestIdentity(t *testing.T) {
	tests := []struct {
		name     string
		info     Info
		expected string
	}{
		{
			name:     "Class preferred over title",
			info:     Info{Class: "Editor", Title: "Report.docx - WordProcessor"},
			expected: "Editor",
		},
		{
			name:     "Class is trimmed",
			info:     Info{Class: "  kitty  "},
			expected: "kitty",
		},
		{
			name:     "Falls back to derived title",
			info:     Info{Title: "Report.docx - WordProcessor"},
			expected: "report.docx",
		},
		{
			name:     "No usable identity",
			info:     Info{Title: "Browser Window"},
			expected: "",
		},
		{
			name:     "Empty sample",
			info:     Info{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.info.Identity()
			if result != tt.expected {
				t.Errorf("Identity() = %q, want %q", result, tt.expected)
			}
		})
	}
}
