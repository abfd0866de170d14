package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOccupancyIndex_PlaceMarksBothMaps(t *testing.T) {
	idx := NewOccupancyIndex()
	idx.Place("t1", "c1", "math", Monday, 1)

	assert.True(t, idx.TeacherBusy("t1", Monday, 1))
	assert.True(t, idx.ClassBusy("c1", Monday, 1))
	assert.Equal(t, 1, idx.WeeklyLoad("t1"))
	assert.Equal(t, 1, idx.DailyLoad("t1", Monday))
	assert.True(t, idx.SubjectUsedDay("c1", "math", Monday))
}

func TestOccupancyIndex_SnapshotRestoreRollsBackFully(t *testing.T) {
	idx := NewOccupancyIndex()
	idx.Place("t1", "c1", "math", Monday, 1)

	snap := idx.Snapshot("t1", "c1")

	idx.Place("t1", "c1", "math", Monday, 2)
	idx.Place("t1", "c1", "eng", Tuesday, 1)

	idx.Restore(snap)

	assert.True(t, idx.TeacherBusy("t1", Monday, 1))
	assert.False(t, idx.TeacherBusy("t1", Monday, 2), "period added after the snapshot must be undone")
	assert.False(t, idx.ClassBusy("c1", Tuesday, 1), "a different subject added after the snapshot must also be undone")
	assert.Equal(t, 1, idx.WeeklyLoad("t1"))
	assert.False(t, idx.SubjectUsedDay("c1", "eng", Tuesday))
}

func TestOccupancyIndex_SnapshotScopedToClass(t *testing.T) {
	idx := NewOccupancyIndex()
	idx.Place("t1", "c1", "math", Monday, 1)
	idx.Place("t2", "c2", "sci", Monday, 1)

	snap := idx.Snapshot("t1", "c1")
	idx.Place("t2", "c2", "sci", Tuesday, 1)
	idx.Restore(snap)

	assert.True(t, idx.ClassBusy("c2", Tuesday, 1), "restoring c1's snapshot must not touch c2's state")
}

func TestWorkload_Clone_IsIndependent(t *testing.T) {
	w := newWorkload()
	w.record(Monday)
	clone := w.clone()
	clone.record(Tuesday)

	assert.Equal(t, 1, w.weekly)
	assert.Equal(t, 2, clone.weekly)
}
