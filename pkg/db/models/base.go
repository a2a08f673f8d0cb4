package models

import "github.com/google/uuid"

// ensureID assigns a fresh identifier before insert when the caller did not
// provide one. Postgres also defaults ids server side; SQLite does not.
func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
