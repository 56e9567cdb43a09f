// Package watch monitors a drop directory and converts recording folders as
// they arrive.
//
// The watcher listens for new subdirectories under a single root, waits for a
// settle window so in-progress copies can finish, then runs each folder
// through the overlay service one at a time. A flock-based lock file inside
// the root prevents two watchers from racing over the same drops.
//
// Folders that exist before the watcher starts are left alone; convert those
// explicitly. The watcher never deletes or moves anything it observes.
package watch
