// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/canonical/compliance-service/internal/logging"
)

// TransactionMiddleware runs every mutating request inside a single WithTx call.
// A handler answering with a status of 400 or above rolls the whole request back,
// so a failed invitation acceptance never leaves a half written membership.
func TransactionMiddleware(db DBClientInterface, logger logging.LoggerInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			err := db.WithTx(r.Context(), func(ctx context.Context) error {
				next.ServeHTTP(sw, r.WithContext(ctx))

				if sw.status >= http.StatusBadRequest {
					return fmt.Errorf("%s %s answered %d", r.Method, r.URL.Path, sw.status)
				}

				return nil
			})

			if err != nil {
				logger.Debugf("rolled back request %s: %v", middleware.GetReqID(r.Context()), err)
			}
		})
	}
}

type statusWriter struct {
	http.ResponseWriter

	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
