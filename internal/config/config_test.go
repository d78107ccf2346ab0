package config

import "testing"

func TestResolveDefaults(t *testing.T) {
	cases := []struct {
		name       string
		cfg        Config
		wantDriver string
		wantErr    bool
	}{
		{"auto without dsn picks sqlite", Config{DBDriver: "auto"}, "sqlite", false},
		{"auto with dsn picks postgres", Config{DBDriver: "auto", PostgresDSN: "postgres://x"}, "postgres", false},
		{"explicit memory", Config{DBDriver: "memory"}, "memory", false},
		{"postgres without dsn rejected", Config{DBDriver: "postgres"}, "", true},
		{"unknown driver rejected", Config{DBDriver: "clay-tablets"}, "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.ResolveDefaults()
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveDefaults: %v", err)
			}
			if tc.cfg.DBDriver != tc.wantDriver {
				t.Fatalf("driver=%q, want %q", tc.cfg.DBDriver, tc.wantDriver)
			}
		})
	}
}
