// Package repositories is the persistence layer. Each entity gets an
// interface consumed by the services and a MongoDB implementation
// constructed from a *mongo.Collection. Tests substitute in-memory
// fakes for the interfaces.
package repositories

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/vastra/pkg/apperr"
)

// notFound converts mongo.ErrNoDocuments into the domain NotFound kind
// so services never leak driver errors.
func notFound(err error, what string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperr.Newf(apperr.NotFound, "%s not found", what)
	}
	return err
}

// isDup reports whether err is a unique-index violation.
func isDup(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

func now() time.Time { return time.Now().UTC() }
