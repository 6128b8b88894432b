package ui

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/truncate"

	"github.com/kastheco/spindle/internal/spotify"
)

const queueDisplayLimit = 10

// UpcomingTracks flattens the player queue for display: the in-flight
// track is dropped and duplicate IDs collapse to their first
// occurrence. Spotify repeats autoplay suggestions in the raw queue.
func UpcomingTracks(queue *spotify.Queue, current *spotify.Track) []spotify.Track {
	if queue == nil {
		return nil
	}
	currentID := ""
	if current != nil {
		currentID = current.ID
	} else if queue.CurrentlyPlaying != nil {
		currentID = queue.CurrentlyPlaying.ID
	}

	seen := make(map[string]bool, len(queue.Queue))
	upcoming := make([]spotify.Track, 0, len(queue.Queue))
	for _, track := range queue.Queue {
		if track.ID == currentID || seen[track.ID] {
			continue
		}
		seen[track.ID] = true
		upcoming = append(upcoming, track)
	}
	return upcoming
}

// RenderQueue draws the upcoming-tracks pane.
func RenderQueue(queue *spotify.Queue, current *spotify.Track, width, height int) string {
	innerWidth := width - 2
	innerHeight := height - 2
	if innerWidth < 1 || innerHeight < 1 {
		return ""
	}

	upcoming := UpcomingTracks(queue, current)

	title := "Queue"
	if queue != nil {
		if len(upcoming) > queueDisplayLimit {
			title = fmt.Sprintf("Queue (%d songs, showing first %d)", len(upcoming), queueDisplayLimit)
		} else {
			title = fmt.Sprintf("Queue (%d songs)", len(upcoming))
		}
	}

	lines := []string{paneTitleStyle.Render(truncate.String(title, uint(innerWidth)))}
	switch {
	case queue == nil:
		lines = append(lines, mutedTextStyle.Render("No queue data available"))
	case len(upcoming) == 0:
		lines = append(lines, mutedTextStyle.Render("Queue is empty"))
	default:
		for i, track := range upcoming {
			if i >= queueDisplayLimit || len(lines) >= innerHeight {
				break
			}
			line := fmt.Sprintf("%d. %s", i+1, TrackLine(track))
			lines = append(lines, listItemStyle.Render(truncate.String(line, uint(innerWidth))))
		}
	}

	if len(lines) > innerHeight {
		lines = lines[:innerHeight]
	}
	for len(lines) < innerHeight {
		lines = append(lines, "")
	}
	return paneStyle.Width(innerWidth).Height(innerHeight).Render(strings.Join(lines, "\n"))
}
