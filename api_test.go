package rsclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestImagesListingPassesFilters(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		writeEnvelope(w, 200, map[string]any{
			"records": []map[string]any{{"id": 5, "name": "scene-1", "format": "tif"}},
			"total":   1, "size": 20, "current": 1,
		})
	}))
	defer srv.Close()

	client, store, _ := newTestClient(t, srv.URL, srv.URL, srv.URL)
	seedSession(t, store, "tok", testUser("42", 0))

	status := 1
	page, err := client.Images(context.Background(), ImageQuery{
		PageQuery: PageQuery{Current: 1, Size: 20},
		Name:      "scene",
		Status:    &status,
	})
	if err != nil {
		t.Fatalf("images: %v", err)
	}
	if gotQuery != "current=1&name=scene&size=20&status=1" {
		t.Fatalf("query = %q", gotQuery)
	}
	if len(page.Records) != 1 || page.Records[0].Name != "scene-1" {
		t.Fatalf("page = %+v", page)
	}
}

func TestTaskStatusDecodesBareNumber(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tasks/9/status" {
			http.NotFound(w, r)
			return
		}
		writeEnvelope(w, 200, 2)
	}))
	defer srv.Close()

	client, _, _ := newTestClient(t, srv.URL, srv.URL, srv.URL)

	status, err := client.TaskStatus(context.Background(), 9)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status != 2 {
		t.Fatalf("status = %d", status)
	}
}

func TestAlgorithmsDecodeUnwrappedMap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The inference service answers without the standard wrapper.
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ndvi":{"name":"ndvi","description":"vegetation index","parameters":{"threshold":{"type":"float","default":0.3,"min":0,"max":1}}}}`))
	}))
	defer srv.Close()

	client, _, _ := newTestClient(t, srv.URL, srv.URL, srv.URL)

	algos, err := client.Algorithms(context.Background())
	if err != nil {
		t.Fatalf("algorithms: %v", err)
	}
	algo, ok := algos["ndvi"]
	if !ok {
		t.Fatalf("algos = %+v", algos)
	}
	if algo.Parameters["threshold"].Default != 0.3 {
		t.Fatalf("parameters = %+v", algo.Parameters)
	}
}

func TestClassificationPagingUsesLegacyParamNames(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		writeEnvelope(w, 200, map[string]any{"records": []any{}, "total": 0, "size": 10, "current": 1})
	}))
	defer srv.Close()

	client, _, _ := newTestClient(t, srv.URL, srv.URL, srv.URL)

	if _, err := client.ClassificationTasks(context.Background(), PageQuery{Current: 1, Size: 10}); err != nil {
		t.Fatalf("classification tasks: %v", err)
	}
	if gotQuery != "pageNum=1&pageSize=10" {
		t.Fatalf("query = %q", gotQuery)
	}
}

func TestCreateClassificationTaskSendsMultipart(t *testing.T) {
	var gotName, gotModelID string
	var gotFile bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		gotName = r.FormValue("name")
		gotModelID = r.FormValue("modelId")
		_, _, err := r.FormFile("file")
		gotFile = err == nil
		writeEnvelope(w, 200, map[string]any{"id": 3, "name": gotName, "status": 0})
	}))
	defer srv.Close()

	client, store, _ := newTestClient(t, srv.URL, srv.URL, srv.URL)
	seedSession(t, store, "tok", testUser("42", 0))

	task, err := client.CreateClassificationTask(context.Background(), ClassificationTaskCreate{
		Name:     "field-7",
		ModelID:  12,
		Filename: "field.png",
		Image:    strings.NewReader("png-bytes"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.ID != 3 {
		t.Fatalf("task = %+v", task)
	}
	if gotName != "field-7" || gotModelID != "12" || !gotFile {
		t.Fatalf("form: name=%q modelId=%q file=%v", gotName, gotModelID, gotFile)
	}
}

func TestDownloadDatasetReturnsArchiveBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/dataset/4/download" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/zip")
		_, _ = w.Write([]byte("PK\x03\x04archive"))
	}))
	defer srv.Close()

	client, _, _ := newTestClient(t, srv.URL, srv.URL, srv.URL)

	data, err := client.DownloadDataset(context.Background(), 4)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if !strings.HasPrefix(string(data), "PK") {
		t.Fatalf("data = %q", data)
	}
}
