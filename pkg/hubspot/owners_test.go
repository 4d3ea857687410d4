package hubspot

import (
	"context"
	"net/http"
	"testing"

	"github.com/salesops/hubspot-export/internal/testutil"
)

const ownersPath = "/crm/v3/owners/"

func TestNewOwnerDirectory_NamePrecedence(t *testing.T) {
	mock := testutil.NewMockHubSpot()
	defer mock.Close()

	mock.SetJSONResponse(ownersPath, `{"results": [
		{"id": "1", "firstName": "Jane", "lastName": "Doe", "email": "jane@example.com"},
		{"id": "2", "firstName": "", "lastName": "", "email": "owner2@example.com"},
		{"id": "3", "firstName": "", "lastName": "", "email": ""},
		{"id": "4", "firstName": "  Solo ", "lastName": "", "email": ""}
	]}`)

	api := newTestAPI(t, mock)

	dir, err := NewOwnerDirectory(context.Background(), api)
	if err != nil {
		t.Fatalf("NewOwnerDirectory() error = %v", err)
	}

	ctx := context.Background()
	tests := []struct {
		id   OwnerID
		want string
	}{
		{"1", "Jane Doe"},
		{"2", "owner2@example.com"},
		{"3", "3"},
		{"4", "Solo"},
	}
	for _, tt := range tests {
		if got := dir.Resolve(ctx, tt.id); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}

	// All four resolutions must be cache hits.
	if n := mock.GetRequestCount(); n != 1 {
		t.Errorf("requests = %d, want 1 (listing only)", n)
	}
}

func TestNewOwnerDirectory_LegacyAlias(t *testing.T) {
	mock := testutil.NewMockHubSpot()
	defer mock.Close()

	mock.SetJSONResponse(ownersPath, `{"results": [
		{"id": "1", "firstName": "Jane", "lastName": "Doe", "email": "jane@example.com", "ownerId": 9001}
	]}`)

	api := newTestAPI(t, mock)

	dir, err := NewOwnerDirectory(context.Background(), api)
	if err != nil {
		t.Fatalf("NewOwnerDirectory() error = %v", err)
	}

	ctx := context.Background()
	if got := dir.Resolve(ctx, "9001"); got != "Jane Doe" {
		t.Errorf("Resolve(legacy id) = %q, want Jane Doe", got)
	}
	if n := mock.GetRequestCount(); n != 1 {
		t.Errorf("requests = %d, want 1 (legacy id must hit the cache)", n)
	}
	if dir.Size() != 2 {
		t.Errorf("Size() = %d, want 2 entries for one owner with a legacy alias", dir.Size())
	}
}

func TestNewOwnerDirectory_Pagination(t *testing.T) {
	mock := testutil.NewMockHubSpot()
	defer mock.Close()

	mock.SetHandler(ownersPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("after") == "" {
			w.Write([]byte(`{"results": [{"id": "1", "firstName": "Jane", "lastName": "Doe"}], "paging": {"next": {"after": "p2"}}}`))
			return
		}
		w.Write([]byte(`{"results": [{"id": "2", "firstName": "John", "lastName": "Smith"}]}`))
	})

	api := newTestAPI(t, mock)

	dir, err := NewOwnerDirectory(context.Background(), api)
	if err != nil {
		t.Fatalf("NewOwnerDirectory() error = %v", err)
	}

	if dir.Size() != 2 {
		t.Errorf("Size() = %d, want 2", dir.Size())
	}
	if n := mock.RequestsFor(ownersPath); n != 2 {
		t.Errorf("listing requests = %d, want 2", n)
	}

	ctx := context.Background()
	if got := dir.Resolve(ctx, "2"); got != "John Smith" {
		t.Errorf("Resolve(2) = %q, want John Smith", got)
	}
}

func TestNewOwnerDirectory_ListingFailureFatal(t *testing.T) {
	mock := testutil.NewMockHubSpot()
	defer mock.Close()

	mock.SetResponse(ownersPath, testutil.NewServerErrorResponse())

	api := newTestAPI(t, mock)

	if _, err := NewOwnerDirectory(context.Background(), api); err == nil {
		t.Fatal("NewOwnerDirectory() expected error, got nil")
	}
}

func TestResolve_FallbackLookup(t *testing.T) {
	mock := testutil.NewMockHubSpot()
	defer mock.Close()

	mock.SetJSONResponse(ownersPath, `{"results": []}`)

	var gotIDProperty string
	mock.SetHandler("/crm/v3/owners/99", func(w http.ResponseWriter, r *http.Request) {
		gotIDProperty = r.URL.Query().Get("idProperty")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "99", "firstName": "Grace", "lastName": "Hopper", "email": "grace@example.com"}`))
	})

	api := newTestAPI(t, mock)

	dir, err := NewOwnerDirectory(context.Background(), api)
	if err != nil {
		t.Fatalf("NewOwnerDirectory() error = %v", err)
	}

	ctx := context.Background()
	if got := dir.Resolve(ctx, "99"); got != "Grace Hopper" {
		t.Errorf("Resolve(99) = %q, want Grace Hopper", got)
	}
	if gotIDProperty != "HUBSPOT_OWNER_ID" {
		t.Errorf("idProperty = %q, want HUBSPOT_OWNER_ID", gotIDProperty)
	}

	// Second resolve must be served from the memoized entry.
	if got := dir.Resolve(ctx, "99"); got != "Grace Hopper" {
		t.Errorf("second Resolve(99) = %q, want Grace Hopper", got)
	}
	if n := mock.RequestsFor("/crm/v3/owners/99"); n != 1 {
		t.Errorf("fallback requests = %d, want at most one per id", n)
	}
}

func TestResolve_FallbackFailureMemoized(t *testing.T) {
	mock := testutil.NewMockHubSpot()
	defer mock.Close()

	mock.SetJSONResponse(ownersPath, `{"results": []}`)
	mock.SetResponse("/crm/v3/owners/77", testutil.NewServerErrorResponse())

	api := newTestAPI(t, mock)

	dir, err := NewOwnerDirectory(context.Background(), api)
	if err != nil {
		t.Fatalf("NewOwnerDirectory() error = %v", err)
	}

	ctx := context.Background()
	if got := dir.Resolve(ctx, "77"); got != "77" {
		t.Errorf("Resolve(77) = %q, want raw id on fallback failure", got)
	}
	if got := dir.Resolve(ctx, "77"); got != "77" {
		t.Errorf("second Resolve(77) = %q, want raw id", got)
	}
	if n := mock.RequestsFor("/crm/v3/owners/77"); n != 1 {
		t.Errorf("fallback requests = %d, want 1 (failures are memoized too)", n)
	}
}

func TestResolve_EmptyID(t *testing.T) {
	mock := testutil.NewMockHubSpot()
	defer mock.Close()

	mock.SetJSONResponse(ownersPath, `{"results": []}`)

	api := newTestAPI(t, mock)

	dir, err := NewOwnerDirectory(context.Background(), api)
	if err != nil {
		t.Fatalf("NewOwnerDirectory() error = %v", err)
	}

	if got := dir.Resolve(context.Background(), ""); got != "" {
		t.Errorf("Resolve(\"\") = %q, want empty string", got)
	}
	if n := mock.GetRequestCount(); n != 1 {
		t.Errorf("requests = %d, want 1 (no lookup for empty id)", n)
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		first    string
		last     string
		email    string
		fallback string
		want     string
	}{
		{"full name", "Jane", "Doe", "jane@example.com", "1", "Jane Doe"},
		{"first only", "Jane", "", "jane@example.com", "1", "Jane"},
		{"last only", "", "Doe", "jane@example.com", "1", "Doe"},
		{"email fallback", "", "", "jane@example.com", "1", "jane@example.com"},
		{"raw fallback", "", "", "", "1", "1"},
		{"whitespace name", "  ", " ", "jane@example.com", "1", "jane@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayName(tt.first, tt.last, tt.email, tt.fallback); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}
