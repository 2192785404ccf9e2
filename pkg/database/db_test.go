package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestDBBeforeConnectFailsFast(t *testing.T) {
	require.NoError(t, Disconnect(context.Background()))

	_, err := DB()
	assert.ErrorIs(t, err, ErrNotConnected)

	_, err = Client()
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestConnectWithoutURI(t *testing.T) {
	err := Connect(context.Background(), "", "delivery")
	assert.ErrorIs(t, err, ErrMissingURI)

	_, err = DB()
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestConnectWithMalformedURI(t *testing.T) {
	err := Connect(context.Background(), "not-a-mongo-uri", "delivery")
	require.Error(t, err)

	_, err = DB()
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestUseInstallsHandle(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("use", func(mt *mtest.T) {
		Use(mt.Client, "delivery")
		mt.Cleanup(func() {
			mu.Lock()
			client, db = nil, nil
			mu.Unlock()
		})

		d, err := DB()
		require.NoError(mt, err)
		assert.Equal(mt, "delivery", d.Name())
	})
}

func TestEnsureIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("creates indexes", func(mt *mtest.T) {
		ok := bson.D{{Key: "ok", Value: 1}}
		mt.AddMockResponses(ok, ok)

		assert.NoError(mt, EnsureIndexes(context.Background(), mt.DB))
	})

	mt.Run("propagates server errors", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Message: "unauthorized",
			Name:    "Unauthorized",
		}))

		assert.Error(mt, EnsureIndexes(context.Background(), mt.DB))
	})
}

func TestPingBeforeConnect(t *testing.T) {
	assert.ErrorIs(t, Ping(context.Background()), ErrNotConnected)
}
