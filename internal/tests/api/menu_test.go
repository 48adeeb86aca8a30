package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"tableside/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuCRUD(t *testing.T) {
	server, _ := newTestServer(t)
	token := adminToken(t)

	// Create without a category defaults to "others"
	w := doJSON(t, server.Router(), "POST", "/api/menu",
		map[string]interface{}{"name": "Lassi", "price": 80}, token)
	assert.Equal(t, http.StatusCreated, w.Code)

	var created models.MenuItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, "others", created.Category)

	path := fmt.Sprintf("/api/menu/%d", created.ID)

	w = doJSON(t, server.Router(), "GET", path, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	// Edits overwrite in place
	w = doJSON(t, server.Router(), "PUT", path,
		map[string]interface{}{"name": "Sweet Lassi", "price": 90, "category": "drinks"}, token)
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.MenuItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Sweet Lassi", updated.Name)
	assert.InDelta(t, 90, updated.Price, 0.001)
	assert.Equal(t, "drinks", updated.Category)

	w = doJSON(t, server.Router(), "DELETE", path, nil, token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, server.Router(), "GET", path, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMenuValidation(t *testing.T) {
	server, _ := newTestServer(t)
	token := adminToken(t)

	w := doJSON(t, server.Router(), "POST", "/api/menu",
		map[string]interface{}{"price": 80}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, server.Router(), "POST", "/api/menu",
		map[string]interface{}{"name": "Lassi", "price": -1}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Menu writes are admin-only
	w = doJSON(t, server.Router(), "POST", "/api/menu",
		map[string]interface{}{"name": "Lassi", "price": 80}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMenuImageUpload(t *testing.T) {
	server, _ := newTestServer(t)
	token := adminToken(t)

	imageBytes := []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "Dosa"))
	require.NoError(t, mw.WriteField("price", "120"))
	require.NoError(t, mw.WriteField("category", "main_course"))

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="dosa.jpg"`)
	header.Set("Content-Type", "image/jpeg")
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(imageBytes)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest("POST", "/api/menu", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.MenuItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Dosa", created.Name)
	assert.InDelta(t, 120, created.Price, 0.001)
	assert.Equal(t, "image/jpeg", created.ImageType)

	// The stored image is served back with its content type
	w = doJSON(t, server.Router(), "GET", fmt.Sprintf("/api/menu/%d/image", created.ID), nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
	assert.Equal(t, imageBytes, w.Body.Bytes())
}

func TestMenuImageMissing(t *testing.T) {
	server, _ := newTestServer(t)
	token := adminToken(t)

	w := doJSON(t, server.Router(), "POST", "/api/menu",
		map[string]interface{}{"name": "Idli", "price": 60}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.MenuItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, server.Router(), "GET", fmt.Sprintf("/api/menu/%d/image", created.ID), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, server.Router(), "GET", "/api/menu/99999/image", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
