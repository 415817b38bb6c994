package imageload

import (
	"fmt"
	"image"
)

// attempt is the explicit result of probing one candidate, so a whole pass
// composes sequentially instead of nesting callbacks.
type attempt struct {
	Source string
	Image  image.Image
	Err    error
}

// runPass attempts every candidate of a slot strictly in priority order.
// The first candidate that decodes wins and is committed exactly once; a
// pass with no winner is handed to the retry supervisor, never to the user.
func (r *Registry) runPass(slot *Slot) {
	var last attempt
	for _, candidate := range slot.Candidates {
		last = r.probeCandidate(candidate)
		if last.Err != nil {
			fmt.Printf("DEBUG: candidate %s failed for slot %s: %v\n", candidate, slot.ID, last.Err)
			continue
		}
		if slot.commit(last.Source) {
			slot.sink.Commit(last.Source, last.Image)
		}
		return
	}
	fmt.Printf("DEBUG: all %d candidates failed for slot %s (last: %v)\n",
		len(slot.Candidates), slot.ID, last.Err)
	r.scheduleRetry(slot)
}

func (r *Registry) probeCandidate(source string) attempt {
	img, err := r.probe.Probe(source)
	return attempt{Source: source, Image: img, Err: err}
}
