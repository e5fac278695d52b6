package normalizer

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"fillers and whitespace", "Um, this   is a Test!!", "this is a test"},
		{"terminology", "Setting up the API in Prod", "deployment the application programming interface in production"},
		{"set up before setup", "we set up the setup", "we deploy the deployment"},
		{"plural config", "Check configs and the config.", "check configurations and the configuration"},
		{"word boundaries", "the aim of dbx", "the aim of dbx"},
		{"only fillers", "uh, um... okay", ""},
		{"empty", "", ""},
		{"unicode letters kept", "Café déjà-vu", "café déjàvu"},
		{"unicode word boundary", "éai naïveapi prodé", "éai naïveapi prodé"},
		{"adjacent terms", "ai ai db", "artificial intelligence artificial intelligence database"},
		{"phrase across filler", "set uh up the db", "deploy the database"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Um, so basically the AI team will set, uh, up the DB in Dev.",
		"OKAY Like I said, Setting Up PROD configs is ACTUALLY hard",
		"Hmm. The API... the api! The Api?",
		"set um up",
		"  Mixed   CASE\tand\nnewlines ",
	}

	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
