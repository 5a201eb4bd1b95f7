package testsupport

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"testing"
)

func postForm(t *testing.T, base, service, action string, form url.Values) (int, any) {
	t.Helper()
	resp, err := http.PostForm(base+"/api_v3/service/"+service+"/action/"+action, form)
	if err != nil {
		t.Fatalf("post %s.%s: %v", service, action, err)
	}
	defer resp.Body.Close()
	var body any
	if resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode %s.%s: %v", service, action, err)
		}
	}
	return resp.StatusCode, body
}

func TestKalturaServerRoutesServiceActions(t *testing.T) {
	srv := NewKalturaServer(t, KalturaFixture{
		Entries: map[string]map[string]any{TestEntryID: {"id": TestEntryID}},
	})

	status, ks := postForm(t, srv.URL, "session", "start", url.Values{
		"secret":    {TestSecret},
		"partnerId": {strconv.Itoa(TestPartnerID)},
	})
	if status != http.StatusOK || ks != TestKS {
		t.Fatalf("session.start = %d %v", status, ks)
	}

	status, entry := postForm(t, srv.URL, "baseEntry", "get", url.Values{"ks": {TestKS}, "entryId": {TestEntryID}})
	obj, _ := entry.(map[string]any)
	if status != http.StatusOK || obj["id"] != TestEntryID {
		t.Fatalf("baseEntry.get = %d %v", status, entry)
	}
	if srv.Calls("session", "start") != 1 || srv.Calls("baseEntry", "get") != 1 {
		t.Fatalf("unexpected call counts")
	}
}

func TestKalturaServerRejectsUnknownPaths(t *testing.T) {
	srv := NewKalturaServer(t, KalturaFixture{})
	resp, err := http.PostForm(srv.URL+"/api_v3/service/session/start/extra", url.Values{})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestKalturaServerInjectsFailures(t *testing.T) {
	srv := NewKalturaServer(t, KalturaFixture{FailService: map[string]int{"session.start": http.StatusBadGateway}})
	if status, _ := postForm(t, srv.URL, "session", "start", url.Values{}); status != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", status)
	}
}
