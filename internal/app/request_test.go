package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
)

const standardPostcards = `{"paper_stock_id":"14pt-matte","size_id":"4x6","quantity":500,"sides":"single","turnaround_id":"standard","category_id":"postcards"}`

func post(app *Application, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	return w
}
