package testsupport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// Fixture identities shared by NewConfig and NewKalturaServer.
const (
	TestPartnerID = 4321
	TestSecret    = "test-secret"
	TestEntryID   = "0_fixture"
	TestKS        = "KS-fixture"
)

// KalturaFixture is the data served by a fake Kaltura API. Objects are plain
// JSON maps so tests can send loosely typed or malformed fields.
type KalturaFixture struct {
	Entries      map[string]map[string]any
	Flavors      map[string][]map[string]any
	Profiles     map[int]map[string]any
	ProfileAsset map[int][]int
	FlavorParams map[int]map[string]any
	// FailService makes every call to "service.action" answer with this
	// HTTP status.
	FailService map[string]int
}

// KalturaServer is an httptest server speaking the subset of api_v3 used by
// the client.
type KalturaServer struct {
	*httptest.Server
	fixture KalturaFixture

	mu    sync.Mutex
	calls map[string]int
}

// NewKalturaServer starts a fake API closed automatically at test end.
func NewKalturaServer(t testing.TB, fixture KalturaFixture) *KalturaServer {
	t.Helper()
	ks := &KalturaServer{fixture: fixture, calls: map[string]int{}}
	ks.Server = httptest.NewServer(http.HandlerFunc(ks.handle))
	t.Cleanup(ks.Close)
	return ks
}

// Calls returns how often service.action was requested.
func (s *KalturaServer) Calls(service, action string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[service+"."+action]
}

func (s *KalturaServer) handle(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 5 || parts[0] != "api_v3" || parts[1] != "service" || parts[3] != "action" {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	service, action := parts[2], parts[4]
	op := service + "." + action
	s.mu.Lock()
	s.calls[op]++
	s.mu.Unlock()

	if status, ok := s.fixture.FailService[op]; ok {
		http.Error(w, "injected failure", status)
		return
	}
	if service != "session" && r.PostForm.Get("ks") != TestKS {
		writeException(w, "INVALID_KS", "Invalid KS")
		return
	}

	switch op {
	case "session.start":
		if r.PostForm.Get("secret") != TestSecret || r.PostForm.Get("partnerId") != strconv.Itoa(TestPartnerID) {
			writeException(w, "START_SESSION_ERROR", "Error while starting session for partner")
			return
		}
		writeJSON(w, TestKS)
	case "baseEntry.get":
		entry, ok := s.fixture.Entries[r.PostForm.Get("entryId")]
		if !ok {
			writeException(w, "ENTRY_ID_NOT_FOUND", "Entry id not found")
			return
		}
		writeJSON(w, entry)
	case "flavorAsset.list":
		writeJSON(w, page(s.fixture.Flavors[r.PostForm.Get("filter[entryIdEqual]")], r))
	case "flavorAsset.getUrl":
		writeJSON(w, "https://cdn.test/"+r.PostForm.Get("id")+".mp4")
	case "conversionProfile.get":
		id, _ := strconv.Atoi(r.PostForm.Get("id"))
		profile, ok := s.fixture.Profiles[id]
		if !ok {
			writeException(w, "CONVERSION_PROFILE_ID_NOT_FOUND", "Conversion profile not found")
			return
		}
		writeJSON(w, profile)
	case "conversionProfileAssetParams.list":
		id, _ := strconv.Atoi(r.PostForm.Get("filter[conversionProfileIdEqual]"))
		objects := make([]map[string]any, 0, len(s.fixture.ProfileAsset[id]))
		for _, pid := range s.fixture.ProfileAsset[id] {
			objects = append(objects, map[string]any{"conversionProfileId": id, "flavorParamsId": pid})
		}
		writeJSON(w, page(objects, r))
	case "flavorParams.get":
		id, _ := strconv.Atoi(r.PostForm.Get("id"))
		params, ok := s.fixture.FlavorParams[id]
		if !ok {
			writeException(w, "FLAVOR_PARAMS_ID_NOT_FOUND", "Flavor params not found")
			return
		}
		writeJSON(w, params)
	default:
		writeException(w, "SERVICE_DOES_NOT_EXISTS", "unknown action "+op)
	}
}

func page(objects []map[string]any, r *http.Request) map[string]any {
	size, _ := strconv.Atoi(r.PostForm.Get("pager[pageSize]"))
	index, _ := strconv.Atoi(r.PostForm.Get("pager[pageIndex]"))
	if size <= 0 {
		size = 30
	}
	if index <= 0 {
		index = 1
	}
	start := min((index-1)*size, len(objects))
	end := min(start+size, len(objects))
	return map[string]any{"objects": objects[start:end], "totalCount": len(objects)}
}

func writeException(w http.ResponseWriter, code, message string) {
	writeJSON(w, map[string]any{"objectType": "KalturaAPIException", "code": code, "message": message})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
