package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/opencourt/courtplay/services"
)

type jsonResponse map[string]interface{}

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576 // 1MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case err.Error() == "http: request body too large":
			return fmt.Errorf("body must not be larger than %d bytes", maxBytes)
		case errors.As(err, &invalidUnmarshalError):
			panic(err) // programmer error: dst is not a pointer
		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	if err != nil {
		return err
	}

	return nil
}

func errorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	env := jsonResponse{"error": message}
	if err := writeJSON(w, status, env, nil); err != nil {
		slog.Error("failed to write error response", slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("internal server error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err))
	message := "the server encountered a problem and could not process your request"
	errorResponse(w, r, http.StatusInternalServerError, message)
}

func badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "the requested resource could not be found"
	errorResponse(w, r, http.StatusNotFound, message)
}

func conflictResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusConflict, message)
}

func getIDFromURL(r *http.Request, paramName string) (int, error) {
	idStr := chi.URLParam(r, paramName)
	if idStr == "" {
		return 0, fmt.Errorf("missing %s in URL path", paramName)
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s format: %q", paramName, idStr)
	}

	if id <= 0 {
		return 0, fmt.Errorf("invalid %s value: %d", paramName, id)
	}

	return id, nil
}

// mapServiceErrorToHTTP translates service layer sentinels into HTTP responses.
func mapServiceErrorToHTTP(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrSessionNotFound),
		errors.Is(err, services.ErrPlayerNotFound),
		errors.Is(err, services.ErrTeamNotFound),
		errors.Is(err, services.ErrGameNotFound):
		notFoundResponse(w, r)

	case errors.Is(err, services.ErrAlreadyCheckedIn),
		errors.Is(err, services.ErrPlayerNameConflict),
		errors.Is(err, services.ErrSessionTeamsAlreadyBuilt),
		errors.Is(err, services.ErrGameAlreadyDone),
		errors.Is(err, services.ErrRoundInProgress):
		conflictResponse(w, r, err.Error())

	case errors.Is(err, services.ErrValidationFailed),
		errors.Is(err, services.ErrSessionNameRequired),
		errors.Is(err, services.ErrSessionInvalidCourts),
		errors.Is(err, services.ErrSessionInvalidTeamSize),
		errors.Is(err, services.ErrSessionInvalidPolicy),
		errors.Is(err, services.ErrSessionNotOpen),
		errors.Is(err, services.ErrSessionNotActive),
		errors.Is(err, services.ErrSessionAlreadyStarted),
		errors.Is(err, services.ErrSessionHasRounds),
		errors.Is(err, services.ErrNotEnoughPlayers),
		errors.Is(err, services.ErrPlayerNameRequired),
		errors.Is(err, services.ErrGroupNameRequired),
		errors.Is(err, services.ErrGroupEmpty),
		errors.Is(err, services.ErrNoTeamsFormed),
		errors.Is(err, services.ErrGameInvalidScore),
		errors.Is(err, services.ErrGameSessionMismatch):
		badRequestResponse(w, r, err)

	default:
		serverErrorResponse(w, r, err)
	}
}
