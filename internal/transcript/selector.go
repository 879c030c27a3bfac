package transcript

import "slices"

// SelectTrack returns the first manually created track, in the set's natural
// order, whose language code is in allow. Auto-generated tracks are never picked.
func SelectTrack(set TrackSet, allow []string) (Track, error) {
	if set == nil {
		return Track{}, ErrNoUsableTrack
	}
	for _, t := range set.Tracks() {
		if t.Generated {
			continue
		}
		if slices.Contains(allow, t.LanguageCode) {
			return t, nil
		}
	}
	return Track{}, ErrNoUsableTrack
}
