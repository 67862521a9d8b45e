package registeruser_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/bookstore/bookstore/features/command/registeruser"
	"github.com/AntonStoeckl/bookstore/bookstore/shared/core"
)

func Test_Decide(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		command registeruser.Command
		wantErr error
	}{
		{name: "valid", command: registeruser.BuildCommand(uuid.New(), "alice", now)},
		{name: "nil_id", command: registeruser.BuildCommand(uuid.Nil, "alice", now), wantErr: core.ErrAuthorization},
		{name: "blank_username", command: registeruser.BuildCommand(uuid.New(), "  ", now), wantErr: core.ErrValidation},
		{
			name:    "username_too_long",
			command: registeruser.BuildCommand(uuid.New(), strings.Repeat("u", 151), now),
			wantErr: core.ErrValidation,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := registeruser.Decide(tc.command)

			if tc.wantErr == nil {
				assert.NoError(t, result.HasError())
				return
			}

			assert.ErrorIs(t, result.HasError(), tc.wantErr)
		})
	}
}
