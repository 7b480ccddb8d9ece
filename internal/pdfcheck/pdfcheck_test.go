package pdfcheck

import "testing"

func TestFindDOI(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "plain doi",
			text: "Available at 10.1109/TIP.2023.3181234 online",
			want: "10.1109/TIP.2023.3181234",
		},
		{
			name: "trailing punctuation stripped",
			text: "see 10.1145/3404835.3462806.",
			want: "10.1145/3404835.3462806",
		},
		{
			name: "no doi",
			text: "just some page text",
			want: "",
		},
		{
			name: "too short rejected",
			text: "10.1/x",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindDOI(tt.text); got != tt.want {
				t.Errorf("FindDOI(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestNormalizeDOI(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"10.1109/TIP.2023.123", "10.1109/tip.2023.123"},
		{"https://doi.org/10.1109/TIP.2023.123", "10.1109/tip.2023.123"},
		{"doi:10.1109/TIP.2023.123", "10.1109/tip.2023.123"},
		{"  10.1109/tip.2023.123  ", "10.1109/tip.2023.123"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeDOI(tt.input); got != tt.want {
			t.Errorf("NormalizeDOI(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
