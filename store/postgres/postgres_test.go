package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adhithyan15/graphene/store"
)

var columns = []string{"id", "graph_name", "directed", "metadata", "nodes", "timestamp", "version"}

const selectByID = "SELECT id, graph_name, directed, metadata, nodes, timestamp, version FROM graph_snapshots WHERE id = $1"

func testSnapshot() *store.Snapshot {
	return &store.Snapshot{
		ID:        "snap-1",
		GraphName: "cities",
		Directed:  false,
		Metadata:  map[string]json.RawMessage{"hello": json.RawMessage("6")},
		Nodes: []store.NodeRecord{
			{Key: "oslo", Derivation: "literal", Value: json.RawMessage(`"Oslo"`)},
		},
		Timestamp: time.Now(),
		Version:   1,
	}
}

func TestPostgresSnapshotStore_Save(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewPostgresSnapshotStoreWithPool(mock, "")
	snap := testSnapshot()

	metadataJSON, _ := json.Marshal(snap.Metadata)
	nodesJSON, _ := json.Marshal(snap.Nodes)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO graph_snapshots")).
		WithArgs(snap.ID, snap.GraphName, snap.Directed, metadataJSON, nodesJSON, snap.Timestamp, snap.Version).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, s.Save(context.Background(), snap))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSnapshotStore_Save_DatabaseError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewPostgresSnapshotStoreWithPool(mock, "")

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO graph_snapshots")).
		WillReturnError(errors.New("connection reset"))

	err = s.Save(context.Background(), testSnapshot())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save snapshot")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSnapshotStore_Load(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewPostgresSnapshotStoreWithPool(mock, "graph_snapshots")
	snap := testSnapshot()
	metadataJSON, _ := json.Marshal(snap.Metadata)
	nodesJSON, _ := json.Marshal(snap.Nodes)

	rows := pgxmock.NewRows(columns).
		AddRow(snap.ID, snap.GraphName, true, metadataJSON, nodesJSON, snap.Timestamp, 3)

	mock.ExpectQuery(regexp.QuoteMeta(selectByID)).
		WithArgs(snap.ID).
		WillReturnRows(rows)

	loaded, err := s.Load(context.Background(), snap.ID)
	require.NoError(t, err)
	assert.Equal(t, "cities", loaded.GraphName)
	assert.True(t, loaded.Directed)
	assert.Equal(t, 3, loaded.Version)
	assert.Equal(t, snap.Nodes, loaded.Nodes)
	assert.JSONEq(t, "6", string(loaded.Metadata["hello"]))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSnapshotStore_Load_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewPostgresSnapshotStoreWithPool(mock, "")

	mock.ExpectQuery(regexp.QuoteMeta(selectByID)).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	loaded, err := s.Load(context.Background(), "missing")
	assert.Nil(t, loaded)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSnapshotStore_Load_InvalidJSON(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewPostgresSnapshotStoreWithPool(mock, "")

	rows := pgxmock.NewRows(columns).
		AddRow("snap-1", "cities", false, []byte("{not json"), []byte("[]"), time.Now(), 1)
	mock.ExpectQuery(regexp.QuoteMeta(selectByID)).
		WithArgs("snap-1").
		WillReturnRows(rows)

	_, err = s.Load(context.Background(), "snap-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal metadata")
}

func TestPostgresSnapshotStore_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewPostgresSnapshotStoreWithPool(mock, "")
	now := time.Now()

	rows := pgxmock.NewRows(columns).
		AddRow("snap-1", "cities", false, []byte(`{}`), []byte(`[]`), now, 1).
		AddRow("snap-2", "cities", false, []byte(`{}`), []byte(`[]`), now.Add(time.Second), 2)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, graph_name, directed, metadata, nodes, timestamp, version FROM graph_snapshots WHERE graph_name = $1 ORDER BY timestamp ASC")).
		WithArgs("cities").
		WillReturnRows(rows)

	list, err := s.List(context.Background(), "cities")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "snap-1", list[0].ID)
	assert.Equal(t, "snap-2", list[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSnapshotStore_DeleteClear(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewPostgresSnapshotStoreWithPool(mock, "")

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM graph_snapshots WHERE id = $1")).
		WithArgs("snap-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM graph_snapshots WHERE graph_name = $1")).
		WithArgs("cities").
		WillReturnResult(pgxmock.NewResult("DELETE", 2))

	require.NoError(t, s.Delete(context.Background(), "snap-1"))
	require.NoError(t, s.Clear(context.Background(), "cities"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSnapshotStore_InitSchema(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewPostgresSnapshotStoreWithPool(mock, "")

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS graph_snapshots")).
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))

	require.NoError(t, s.InitSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
