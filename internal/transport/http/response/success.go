package response

import "net/http"

func JSON(w http.ResponseWriter, status int, v any) {
	writeJSON(w, status, v)
}

func Message(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
