package tests

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/darasahq/darasa/core/lesson"
	testutil "github.com/darasahq/darasa/tests"
)

func Test_lessonApi_create(t *testing.T) {
	teacherToken := getToken(t, teacher)

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Teacher required", token: getToken(t, student),
			body:     marchallObj(t, lesson.NewLesson{Title: "Nope"}),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name: "Title required", token: teacherToken,
			body:     marchallObj(t, lesson.NewLesson{ModuleID: "m1"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"title": "this field is required"}),
		},
		{
			name: "Lesson created", token: teacherToken,
			body:     marchallObj(t, lesson.NewLesson{ModuleID: "m1", Title: "Photosynthesis"}),
			wantCode: http.StatusCreated,
		},
		{
			name: "Admin can create too", token: getToken(t, admin),
			body:     marchallObj(t, lesson.NewLesson{ModuleID: "m1", Title: "Respiration"}),
			wantCode: http.StatusCreated,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/v1/lessons", tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusCreated {
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
				}
				var les lesson.Lesson
				decodeBody(t, rec, &les)
				if les.ID == "" {
					t.Error("created lesson has no id")
				}
				if les.Blocks == nil || len(les.Blocks) != 0 {
					t.Errorf("new lesson blocks = %v, want empty list", les.Blocks)
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_lessonApi_query(t *testing.T) {
	bio := testutil.CreateLesson(t, lessonRepo, "mod-query", "Photosynthesis", nil)
	chem := testutil.CreateLesson(t, lessonRepo, "mod-query", "Acids and Bases", nil)
	testutil.CreateLesson(t, lessonRepo, "mod-other", "Fractions", nil)

	studentToken := getToken(t, student)

	tests := []httpTest{
		{name: "Auth required", path: "/v1/lessons", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Filter by module", path: "/v1/lessons?module_id=mod-query&ordering=title",
			token: studentToken, wantCode: http.StatusOK,
			wantData: marchallList(t, chem, bio),
		},
		{
			name: "Search", path: "/v1/lessons?module_id=mod-query&search=photo",
			token: studentToken, wantCode: http.StatusOK,
			wantData: marchallList(t, bio),
		},
		{
			name: "No match is an empty list", path: "/v1/lessons?module_id=mod-query&search=astronomy",
			token: studentToken, wantCode: http.StatusOK,
			wantData: []byte(`[]`),
		},
		{
			name: "Unknown ordering field is rejected", path: "/v1/lessons?ordering=-evil",
			token: studentToken, wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: `unknown ordering field "evil"`}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_lessonApi_retrieve(t *testing.T) {
	les := testutil.CreateLesson(t, lessonRepo, "mod-get", "Photosynthesis", testutil.TextBlocks(2))
	studentToken := getToken(t, student)

	tests := []httpTest{
		{name: "Auth required", path: "/v1/lessons/" + les.ID, wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Not found", path: "/v1/lessons/ghost", token: studentToken,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "lesson not found"}),
		},
		{
			name: "Found", path: "/v1/lessons/" + les.ID, token: studentToken,
			wantCode: http.StatusOK, wantData: marchallObj(t, les),
		},
		{
			name: "Legacy nested shape", path: "/v1/lessons/" + les.ID + "?nested=true", token: studentToken,
			wantCode: http.StatusOK, wantData: marchallObj(t, les.Nested()),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_lessonApi_update(t *testing.T) {
	les := testutil.CreateLesson(t, lessonRepo, "mod-upd", "Before", nil)
	teacherToken := getToken(t, teacher)

	req, rec := newAuthRequest(http.MethodPut, "/v1/lessons/"+les.ID, teacherToken,
		marchallObj(t, lesson.UpdateLesson{Title: "After", Description: "Updated."}))
	app.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
	}
	var got lesson.Lesson
	decodeBody(t, rec, &got)
	if got.Title != "After" || got.Description != "Updated." {
		t.Errorf("updated lesson = %+v", got)
	}

	// students cannot update
	req, rec = newAuthRequest(http.MethodPut, "/v1/lessons/"+les.ID, getToken(t, student),
		marchallObj(t, lesson.UpdateLesson{Title: "Hax"}))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("student update code = %v, want 403", rec.Code)
	}
}

func Test_lessonApi_destroy(t *testing.T) {
	les := testutil.CreateLesson(t, lessonRepo, "mod-del", "Doomed", nil)
	teacherToken := getToken(t, teacher)

	req, rec := newAuthRequest(http.MethodDelete, "/v1/lessons/"+les.ID, teacherToken)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("code = %v, want 204", rec.Code)
	}

	req, rec = newAuthRequest(http.MethodGet, "/v1/lessons/"+les.ID, teacherToken)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("deleted lesson still retrievable: %v", rec.Code)
	}
}

func Test_lessonApi_destroyMany(t *testing.T) {
	les1 := testutil.CreateLesson(t, lessonRepo, "mod-purge", "Doomed I", nil)
	les2 := testutil.CreateLesson(t, lessonRepo, "mod-purge", "Doomed II", nil)
	adminToken := getToken(t, admin)

	tests := []httpTest{
		{
			name: "Admin only", path: "/v1/lessons?ids=" + les1.ID,
			token: getToken(t, teacher), wantCode: http.StatusForbidden,
			wantData: marchallObj(t, errForbidden),
		},
		{
			name: "No ids given", path: "/v1/lessons",
			token: adminToken, wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "no lesson ids given"}),
		},
		{
			name: "Bulk delete", path: fmt.Sprintf("/v1/lessons?ids=%s,%s", les1.ID, les2.ID),
			token: adminToken, wantCode: http.StatusNoContent,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodDelete, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	req, rec := newAuthRequest(http.MethodGet, "/v1/lessons/"+les2.ID, adminToken)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("deleted lesson still retrievable: %v", rec.Code)
	}
}

func Test_lessonApi_queryTemplates(t *testing.T) {
	req, rec := newAuthRequest(http.MethodGet, "/v1/lessons/templates", getToken(t, student))
	app.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
	}
	var templates []lesson.Template
	decodeBody(t, rec, &templates)
	if len(templates) != len(lesson.Templates()) {
		t.Errorf("templates = %d, want %d", len(templates), len(lesson.Templates()))
	}
}

func Test_lessonApi_addBlock(t *testing.T) {
	les := testutil.CreateLesson(t, lessonRepo, "mod-blocks", "Canvas", nil)
	teacherToken := getToken(t, teacher)
	path := fmt.Sprintf("/v1/lessons/%s/blocks", les.ID)

	type newBlockReq struct {
		TemplateID string `json:"template_id"`
		SubType    string `json:"sub_type,omitempty"`
	}

	tests := []httpTest{
		{name: "Auth required", path: path, wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Teacher required", path: path, token: getToken(t, student),
			body:     marchallObj(t, newBlockReq{TemplateID: "text"}),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name: "Template id required", path: path, token: teacherToken,
			body:     marchallObj(t, newBlockReq{}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"template_id": "this field is required"}),
		},
		{
			name: "Unknown template", path: path, token: teacherToken,
			body:     marchallObj(t, newBlockReq{TemplateID: "hologram"}),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "block template not found"}),
		},
		{
			name: "Unknown lesson", path: "/v1/lessons/ghost/blocks", token: teacherToken,
			body:     marchallObj(t, newBlockReq{TemplateID: "text"}),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "lesson not found"}),
		},
		{
			name: "Block created", path: path, token: teacherToken,
			body:     marchallObj(t, newBlockReq{TemplateID: "statement", SubType: "warning"}),
			wantCode: http.StatusCreated,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusCreated {
				if rec.Code != tt.wantCode {
					t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
				}
				var block lesson.ContentBlock
				decodeBody(t, rec, &block)
				if block.Type != lesson.BlockStatement || block.StatementType != "warning" {
					t.Errorf("block = %+v", block)
				}
				if block.Order != 1 {
					t.Errorf("order = %d, want 1", block.Order)
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_lessonApi_updateBlock(t *testing.T) {
	les := testutil.CreateLesson(t, lessonRepo, "mod-blkupd", "Canvas", testutil.TextBlocks(2))
	teacherToken := getToken(t, teacher)

	req, rec := newAuthRequest(http.MethodPut, fmt.Sprintf("/v1/lessons/%s/blocks/b2", les.ID), teacherToken,
		[]byte(`{"title":"Renamed","content":"<p>New.</p>"}`))
	app.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
	}
	var block lesson.ContentBlock
	decodeBody(t, rec, &block)
	if block.Title != "Renamed" || block.Content != "<p>New.</p>" {
		t.Errorf("patched block = %+v", block)
	}
	if block.Order != 2 {
		t.Errorf("order = %d, want 2 (untouched)", block.Order)
	}

	// unknown block id is loud, not a silent no-op
	req, rec = newAuthRequest(http.MethodPut, fmt.Sprintf("/v1/lessons/%s/blocks/ghost", les.ID), teacherToken,
		[]byte(`{"title":"X"}`))
	app.ServeHTTP(rec, req)
	tt := httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "content block not found"})}
	checkCodeAndData(t, tt, rec)
}

func Test_lessonApi_removeBlock(t *testing.T) {
	les := testutil.CreateLesson(t, lessonRepo, "mod-blkdel", "Canvas", testutil.TextBlocks(3))
	teacherToken := getToken(t, teacher)

	req, rec := newAuthRequest(http.MethodDelete, fmt.Sprintf("/v1/lessons/%s/blocks/b2", les.ID), teacherToken)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
	}

	// survivors keep their ids and orders
	req, rec = newAuthRequest(http.MethodGet, "/v1/lessons/"+les.ID, teacherToken)
	app.ServeHTTP(rec, req)
	var got lesson.Lesson
	decodeBody(t, rec, &got)
	if len(got.Blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(got.Blocks))
	}
	if got.Blocks[0].ID != "b1" || got.Blocks[0].Order != 1 || got.Blocks[1].ID != "b3" || got.Blocks[1].Order != 3 {
		t.Errorf("blocks = %+v", got.Blocks)
	}

	req, rec = newAuthRequest(http.MethodDelete, fmt.Sprintf("/v1/lessons/%s/blocks/ghost", les.ID), teacherToken)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("ghost delete code = %v, want 404", rec.Code)
	}
}

func Test_lessonApi_moveBlock(t *testing.T) {
	les := testutil.CreateLesson(t, lessonRepo, "mod-move", "Canvas", testutil.TextBlocks(3))
	teacherToken := getToken(t, teacher)
	path := func(blockID string) string {
		return fmt.Sprintf("/v1/lessons/%s/blocks/%s/move", les.ID, blockID)
	}

	// bad index
	req, rec := newAuthRequest(http.MethodPost, path("b1"), teacherToken, []byte(`{"new_index":9}`))
	app.ServeHTTP(rec, req)
	tt := httpTest{wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "block index out of range"})}
	checkCodeAndData(t, tt, rec)

	// move last block to the front
	req, rec = newAuthRequest(http.MethodPost, path("b3"), teacherToken, []byte(`{"new_index":0}`))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
	}
	var got lesson.Lesson
	decodeBody(t, rec, &got)
	wantIDs := []string{"b3", "b1", "b2"}
	for i, b := range got.Blocks {
		if b.ID != wantIDs[i] {
			t.Errorf("block %d = %q, want %q", i, b.ID, wantIDs[i])
		}
		if b.Order != i+1 {
			t.Errorf("block %d order = %d, want %d (renumbered)", i, b.Order, i+1)
		}
	}
}

func Test_lessonApi_convert(t *testing.T) {
	teacherToken := getToken(t, teacher)

	doc := []byte(`{
		"document": {
			"title": "Photosynthesis",
			"content": {
				"introduction": "How plants eat light.",
				"mainContent": [{"point": "Absorption", "description": "Chlorophyll."}],
				"multimedia": {"image": "https://img.test/leaf.png"},
				"qa": [{"question": "Why green?", "answer": "Chlorophyll.", "difficulty": "easy"}],
				"summary": "Light in, sugar out."
			}
		}
	}`)

	req, rec := newAuthRequest(http.MethodPost, "/v1/lessons/convert", teacherToken, doc)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
	}
	var blocks []lesson.ContentBlock
	decodeBody(t, rec, &blocks)
	wantTypes := []lesson.BlockType{
		lesson.BlockHeading, lesson.BlockText, lesson.BlockText,
		lesson.BlockImage, lesson.BlockQA, lesson.BlockText,
	}
	if len(blocks) != len(wantTypes) {
		t.Fatalf("blocks = %d, want %d", len(blocks), len(wantTypes))
	}
	for i, b := range blocks {
		if b.Type != wantTypes[i] {
			t.Errorf("block %d type = %q, want %q", i, b.Type, wantTypes[i])
		}
		if b.ID != fmt.Sprintf("block_%d", i+1) {
			t.Errorf("block %d id = %q", i, b.ID)
		}
	}
	// bare-string image ref gets the caption fallback
	if blocks[3].Caption != "Lesson illustration" {
		t.Errorf("image caption = %q", blocks[3].Caption)
	}

	// with module_id the converted document is saved as a new lesson
	saved := []byte(`{"module_id": "mod-import", "document": {"title": "Imported", "content": {"summary": "S."}}}`)
	req, rec = newAuthRequest(http.MethodPost, "/v1/lessons/convert", teacherToken, saved)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("import code = %v; body %s", rec.Code, rec.Body.String())
	}
	var les lesson.Lesson
	decodeBody(t, rec, &les)
	if les.ID == "" || les.Title != "Imported" || len(les.Blocks) != 2 {
		t.Errorf("imported lesson = %+v", les)
	}

	// students cannot convert
	req, rec = newAuthRequest(http.MethodPost, "/v1/lessons/convert", getToken(t, student), doc)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("student convert code = %v, want 403", rec.Code)
	}
}

func Test_lessonApi_preview(t *testing.T) {
	les := testutil.CreateLesson(t, lessonRepo, "mod-preview", "Canvas", testutil.TextBlocks(2))
	studentToken := getToken(t, student)

	req, rec := newAuthRequest(http.MethodGet, fmt.Sprintf("/v1/lessons/%s/preview?theme=vibrant", les.ID), studentToken)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
	}
	var rendered []lesson.RenderedBlock
	decodeBody(t, rec, &rendered)
	if len(rendered) != 2 {
		t.Fatalf("rendered = %d, want 2", len(rendered))
	}
	for i, rb := range rendered {
		if rb.HTML == "" {
			t.Errorf("rendered %d html is empty", i)
		}
		if rb.Order != i+1 {
			t.Errorf("rendered %d order = %d", i, rb.Order)
		}
	}

	// unknown theme
	req, rec = newAuthRequest(http.MethodGet, fmt.Sprintf("/v1/lessons/%s/preview?theme=goth", les.ID), studentToken)
	app.ServeHTTP(rec, req)
	tt := httpTest{wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "theme not found"})}
	checkCodeAndData(t, tt, rec)
}

func Test_lessonApi_previewProgress(t *testing.T) {
	les := testutil.CreateLesson(t, lessonRepo, "mod-progress", "Canvas", testutil.TextBlocks(3))
	studentToken := getToken(t, student)
	path := fmt.Sprintf("/v1/lessons/%s/preview/progress", les.ID)

	tests := []httpTest{
		{
			name: "nothing completed", body: []byte(`{"completed_ids":[]}`),
			wantData: marchallObj(t, lesson.ProgressReport{CompletedCount: 0, TotalCount: 3, Percent: 0}),
		},
		{
			name: "one of three", body: []byte(`{"completed_ids":["b1"]}`),
			wantData: marchallObj(t, lesson.ProgressReport{CompletedCount: 1, TotalCount: 3, Percent: 33}),
		},
		{
			name: "duplicates and unknowns ignored", body: []byte(`{"completed_ids":["b1","b1","ghost"]}`),
			wantData: marchallObj(t, lesson.ProgressReport{CompletedCount: 1, TotalCount: 3, Percent: 33}),
		},
		{
			name: "all done", body: []byte(`{"completed_ids":["b1","b2","b3"]}`),
			wantData: marchallObj(t, lesson.ProgressReport{CompletedCount: 3, TotalCount: 3, Percent: 100}),
		},
	}
	for _, tt := range tests {
		tt.wantCode = http.StatusOK

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, path, studentToken, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	// a lesson with no blocks reports 0%, not an error
	empty := testutil.CreateLesson(t, lessonRepo, "mod-progress", "Empty", nil)
	req, rec := newAuthRequest(http.MethodPost, fmt.Sprintf("/v1/lessons/%s/preview/progress", empty.ID), studentToken,
		[]byte(`{"completed_ids":["anything"]}`))
	app.ServeHTTP(rec, req)
	tt := httpTest{
		wantCode: http.StatusOK,
		wantData: marchallObj(t, lesson.ProgressReport{CompletedCount: 0, TotalCount: 0, Percent: 0}),
	}
	checkCodeAndData(t, tt, rec)
}
