package reembed

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressTracker(t *testing.T) {
	t.Run("reports at interval", func(t *testing.T) {
		var buf bytes.Buffer
		tracker := NewProgressTracker(&buf, 100, 50)
		tracker.Start()

		tracker.Update(10)
		assert.Empty(t, buf.String())

		tracker.Update(50)
		assert.Contains(t, buf.String(), "50/100")
		assert.Contains(t, buf.String(), "50.0%")
	})

	t.Run("finish prints final progress", func(t *testing.T) {
		var buf bytes.Buffer
		tracker := NewProgressTracker(&buf, 10, 100)
		tracker.Start()
		tracker.Update(3)
		tracker.Finish()

		assert.Contains(t, buf.String(), "10/10")
		assert.Contains(t, buf.String(), "100.0%")
	})

	t.Run("caps at total", func(t *testing.T) {
		var buf bytes.Buffer
		tracker := NewProgressTracker(&buf, 10, 1)
		tracker.Start()
		tracker.Update(25)

		assert.Contains(t, buf.String(), "10/10")
	})

	t.Run("ignores updates before start", func(t *testing.T) {
		var buf bytes.Buffer
		tracker := NewProgressTracker(&buf, 10, 1)
		tracker.Update(5)
		tracker.Finish()

		assert.Empty(t, buf.String())
		assert.Zero(t, tracker.Elapsed())
	})
}
