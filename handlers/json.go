package handlers

import (
	"encoding/json"
	"net/http"
)

func jsonRequest(req *http.Request, target interface{}) error {
	return json.NewDecoder(req.Body).Decode(target)
}

func jsonResponse(object interface{}, writer http.ResponseWriter) {
	resp, err := json.Marshal(object)
	if err != nil {
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}
	writer.Write(resp)
}
