// Package encode drives a FrameSelection through an encoder Sink.
//
// Build loads each selected source image in order, converts it with the
// ToRGB24 transform, appends it to the sink and reports progress, then
// finalizes the sink. Any failure aborts the whole build: no retries, no
// re-ordering, no skipped frames. Cleaning up a partial artifact is the
// caller's job.
package encode
