package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hexterra/reachcore/anchor"
	"github.com/hexterra/reachcore/core"
	"github.com/hexterra/reachcore/danchor"
	"github.com/hexterra/reachcore/parquetio"
	"github.com/hexterra/reachcore/runmanifest"
)

func writeTestShard(t *testing.T, root string, labelID int32, n int) {
	t.Helper()
	rows := make([]danchor.Row, n)
	for i := range rows {
		rows[i] = danchor.Row{
			AnchorID: 0,
			LabelID:  labelID,
			Rank:     uint8(i),
			POIID:    anchor.POIID{byte(i + 1)},
			Seconds:  uint16(10 * (i + 1)),
		}
	}
	require.NoError(t, parquetio.WriteDAnchorShard(root, core.Drive, labelID, rows))
}

func TestCheckManifestRowCounts_MatchingShardsPass(t *testing.T) {
	root := t.TempDir()
	writeTestShard(t, root, 7, 3)

	m := runmanifest.Manifest{
		Mode: "drive",
		Entries: []runmanifest.Entry{
			{LabelID: 7, Status: string(danchor.StatusOK), RowsWritten: 3},
			{LabelID: 8, Status: string(danchor.StatusNoSources)},
		},
	}
	require.NoError(t, checkManifestRowCounts(m, root))
}

func TestCheckManifestRowCounts_RowCountMismatchFails(t *testing.T) {
	root := t.TempDir()
	writeTestShard(t, root, 7, 3)

	m := runmanifest.Manifest{
		Mode:    "drive",
		Entries: []runmanifest.Entry{{LabelID: 7, Status: string(danchor.StatusOK), RowsWritten: 5}},
	}
	require.Error(t, checkManifestRowCounts(m, root))
}

func TestCheckManifestRowCounts_MissingShardForOKEntryFails(t *testing.T) {
	m := runmanifest.Manifest{
		Mode:    "drive",
		Entries: []runmanifest.Entry{{LabelID: 7, Status: string(danchor.StatusOK), RowsWritten: 1}},
	}
	require.Error(t, checkManifestRowCounts(m, t.TempDir()))
}

func TestCheckManifestRowCounts_ShardForSkippedEntryFails(t *testing.T) {
	root := t.TempDir()
	writeTestShard(t, root, 9, 1)

	m := runmanifest.Manifest{
		Mode:    "drive",
		Entries: []runmanifest.Entry{{LabelID: 9, Status: string(danchor.StatusNoSources)}},
	}
	require.Error(t, checkManifestRowCounts(m, root))
}
