// Package session is the durable session-state core of Scribe.
//
// # Overview
//
// A session tracks which project is active in a workspace: its name, its
// working directory, its open files, and the git branch that was current
// when the session was created. Every state-affecting operation is also
// recorded in an append-only audit log, so the full history of a project
// remains inspectable long after the in-memory state is gone.
//
// # Three sources of truth
//
// The core reconciles three independently-owned views of the same state:
//
//  1. The in-memory Context held by the Store.
//  2. One JSON file per scope on disk (a main file for the project-less
//     scope and one file per named project), each holding the latest
//     session snapshot plus the complete operation log.
//  3. The git branch of the workspace, coupled to sessions only through
//     the SRS/<project> naming convention.
//
// No locking spans these sources. The Store serializes its own mutations,
// the persistence layer tolerates missing, corrupt, and legacy-format
// files, and the consistency checker reports divergences between the
// three views without ever repairing them.
//
// # Recovery
//
// On startup the Store decides, heuristically, whether the previous exit
// was intentional. An explicit shutdown writes a short-lived flag; if the
// flag is fresh, recovery is skipped and the process starts clean.
// Otherwise the current branch picks the file to restore: an SRS/<name>
// branch restores (or re-synthesizes) that project's session, anything
// else falls back to the main file. Recovery never blocks startup; every
// failure simply leaves the session empty.
//
// # Durability
//
// Session files are written whole via a temp-file-plus-rename so a crash
// mid-write cannot destroy the previous state. Files are never deleted:
// once a project exists, its audit history is retained permanently.
package session
