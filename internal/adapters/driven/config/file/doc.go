// Package file persists qsc settings in ~/.qsc/config.toml and watches the
// file so running front ends pick up edits without a restart.
package file
