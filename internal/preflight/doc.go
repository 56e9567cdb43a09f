// Package preflight verifies the environment a conversion run depends on.
//
// Checks cover the ffmpeg/ffprobe binaries, directory access for configured
// output and log locations, and free space for burned videos. The status
// command renders the results; nothing here mutates state.
package preflight
