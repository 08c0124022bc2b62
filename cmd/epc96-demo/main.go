/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// The epc96-demo service is a small JSON front door to the epc package: it
// encodes SGTIN-96 and GID-96 tags, converts UPC-A bar codes, and decodes hex
// EPCs. It exists to demo the codec; it holds no state and talks to nothing
// but its caller.
package main

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/intel/rsp-sw-toolkit-im-suite-epc96/bitfield"
	"github.com/intel/rsp-sw-toolkit-im-suite-epc96/digits"
	"github.com/intel/rsp-sw-toolkit-im-suite-epc96/epc"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const jsonApplication = "application/json;charset=utf-8"

func main() {
	// Ensure simple text format
	log.SetFormatter(&log.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})

	port := os.Getenv("EPC96_DEMO_PORT")
	if port == "" {
		port = "8080"
	}

	log.WithFields(log.Fields{
		"Method": "main",
		"Action": "Start",
		"Port":   port,
	}).Info("Starting EPC-96 demo service...")

	if err := http.ListenAndServe(":"+port, newRouter()); err != nil {
		log.WithFields(log.Fields{
			"Method": "main",
			"Error":  err.Error(),
		}).Fatal("Unable to serve")
	}
}

// route holds the attributes to declare one route.
type route struct {
	name, method, pattern string
	handlerFunc           http.HandlerFunc
}

func newRouter() *mux.Router {
	routes := []route{
		{"Index", "GET", "/", index},
		{"EncodeSgtin96", "POST", "/encode/sgtin96", encodeSgtin96},
		{"EncodeGid96", "POST", "/encode/gid96", encodeGid96},
		{"EncodeUpcA", "POST", "/encode/upc-a", encodeUpcA},
		{"Decode", "GET", "/decode/{epc}", decode},
	}

	router := mux.NewRouter()
	for _, r := range routes {
		router.Methods(r.method).
			Path(r.pattern).
			Name(r.name).
			Handler(logged(r.name, r.handlerFunc))
	}
	return router
}

func logged(name string, handler http.HandlerFunc) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		log.WithFields(log.Fields{
			"Method":     request.Method,
			"RequestURI": request.RequestURI,
			"Handler":    name,
		}).Info("Handling request")
		handler(writer, request)
	}
}

func index(writer http.ResponseWriter, request *http.Request) {
	respond(writer, map[string]string{"status": "ok"}, http.StatusOK)
}

func encodeSgtin96(writer http.ResponseWriter, request *http.Request) {
	var input epc.Sgtin96Input
	if err := decodeBody(request, &input); err != nil {
		respondError(writer, err, http.StatusBadRequest)
		return
	}

	result, err := epc.EncodeSgtin96(input)
	if err != nil {
		respondError(writer, err, errorCode(err))
		return
	}
	respond(writer, result, http.StatusOK)
}

func encodeGid96(writer http.ResponseWriter, request *http.Request) {
	var input epc.Gid96Input
	if err := decodeBody(request, &input); err != nil {
		respondError(writer, err, http.StatusBadRequest)
		return
	}

	result, err := epc.EncodeGid96(input)
	if err != nil {
		respondError(writer, err, errorCode(err))
		return
	}
	respond(writer, result, http.StatusOK)
}

func encodeUpcA(writer http.ResponseWriter, request *http.Request) {
	var input epc.UpcToSgtin96Input
	if err := decodeBody(request, &input); err != nil {
		respondError(writer, err, http.StatusBadRequest)
		return
	}

	result, err := epc.EncodeSgtin96FromUpcA(input)
	if err != nil {
		respondError(writer, err, errorCode(err))
		return
	}
	respond(writer, result, http.StatusOK)
}

func decode(writer http.ResponseWriter, request *http.Request) {
	result, err := epc.Decode(mux.Vars(request)["epc"])
	if err != nil {
		respondError(writer, err, errorCode(err))
		return
	}
	respond(writer, result, http.StatusOK)
}

func decodeBody(request *http.Request, v interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(v); err != nil {
		return errors.Wrap(err, "unable to decode request body")
	}
	return nil
}

// jsonError is the response body for failed requests.
type jsonError struct {
	Error string `json:"error"`
}

// errorCode maps the codec's input-validation failures to 400s; anything else
// is a server-side surprise.
func errorCode(err error) int {
	switch errors.Cause(err).(type) {
	case *digits.ValidationError,
		*bitfield.FormatError,
		*bitfield.RangeError,
		*epc.RangeError,
		*epc.UnsupportedPartitionError,
		*epc.PartitionMismatchError,
		*epc.UnsupportedPrefixLengthError,
		*epc.CheckDigitMismatchError,
		*epc.UnsupportedHeaderError:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func respondError(writer http.ResponseWriter, err error, code int) {
	if code == http.StatusInternalServerError {
		log.WithFields(log.Fields{
			"Code":  code,
			"Error": err.Error(),
		}).Error("Server error")
	}
	respond(writer, jsonError{Error: err.Error()}, code)
}

func respond(writer http.ResponseWriter, data interface{}, code int) {
	writer.Header().Set("Content-Type", jsonApplication)
	writer.WriteHeader(code)
	if data == nil {
		return
	}
	if err := json.NewEncoder(writer).Encode(data); err != nil {
		log.WithFields(log.Fields{
			"Error": err.Error(),
		}).Error("Unable to write response")
	}
}
