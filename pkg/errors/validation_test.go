package errors

import "testing"

func TestValidateHost(t *testing.T) {
	tests := []struct {
		name    string
		host    string
		wantErr bool
	}{
		{"localhost", "localhost", false},
		{"fqdn", "gremlin.example.com", false},
		{"ipv4", "127.0.0.1", false},
		{"empty", "", true},
		{"scheme", "ws://localhost", true},
		{"control char", "local\x00host", true},
		{"trailing dot dash", "host-", true},
		{"space", "my host", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHost(tt.host)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHost(%q) error = %v, wantErr %v", tt.host, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeConfig) {
				t.Errorf("ValidateHost(%q) code = %v, want %v", tt.host, GetCode(err), ErrCodeConfig)
			}
		})
	}
}

func TestValidatePort(t *testing.T) {
	tests := []struct {
		port    int
		wantErr bool
	}{
		{8182, false},
		{1, false},
		{65535, false},
		{0, true},
		{-1, true},
		{65536, true},
	}

	for _, tt := range tests {
		if err := ValidatePort(tt.port); (err != nil) != tt.wantErr {
			t.Errorf("ValidatePort(%d) error = %v, wantErr %v", tt.port, err, tt.wantErr)
		}
	}
}

func TestValidateEndpointPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"default", "/gremlin", false},
		{"nested", "/api/gremlin", false},
		{"empty", "", true},
		{"relative", "gremlin", true},
		{"traversal", "/../gremlin", true},
		{"whitespace", "/grem lin", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateEndpointPath(tt.path); (err != nil) != tt.wantErr {
				t.Errorf("ValidateEndpointPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}
