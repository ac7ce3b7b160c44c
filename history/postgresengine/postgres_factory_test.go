package postgresengine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dispatchkit/cqrs-dispatch-go/history"
	"github.com/dispatchkit/cqrs-dispatch-go/history/postgresengine"
)

func Test_FactoryFunctions_NewArchive_ShouldFail_WithNilDatabaseConnection(t *testing.T) {
	testCases := []struct {
		name        string
		factoryFunc func() (postgresengine.Archive, error)
	}{
		{
			name: "NewArchiveFromPGXPool with nil",
			factoryFunc: func() (postgresengine.Archive, error) {
				return postgresengine.NewArchiveFromPGXPool(nil)
			},
		},
		{
			name: "NewArchiveFromPGXPoolWithReplica with nil primary",
			factoryFunc: func() (postgresengine.Archive, error) {
				return postgresengine.NewArchiveFromPGXPoolWithReplica(nil, nil)
			},
		},
		{
			name: "NewArchiveFromSQLDB with nil",
			factoryFunc: func() (postgresengine.Archive, error) {
				return postgresengine.NewArchiveFromSQLDB(nil)
			},
		},
		{
			name: "NewArchiveFromSQLX with nil",
			factoryFunc: func() (postgresengine.Archive, error) {
				return postgresengine.NewArchiveFromSQLX(nil)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.factoryFunc()

			require.Error(t, err)
			assert.ErrorIs(t, err, history.ErrNilDatabaseConnection)
		})
	}
}
