package middleware

import "net/http"

func WriteJSONForTest(w http.ResponseWriter, v any) { writeJSON(w, http.StatusOK, v) }
