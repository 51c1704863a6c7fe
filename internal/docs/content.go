package docs

var topics = []Topic{
	{
		Name:    "quickstart",
		Aliases: []string{"start", "intro"},
		Title:   "Quick Start",
		Summary: "Getting started with monozip",
		Content: topicQuickstart,
	},
	{
		Name:    "input",
		Aliases: []string{"paste", "parsing"},
		Title:   "Paste Format",
		Summary: "How pasted text is split into files",
		Content: topicInput,
	},
	{
		Name:    "presets",
		Aliases: []string{"preset", "starters"},
		Title:   "Presets",
		Summary: "Starter file sets and the catalog format",
		Content: topicPresets,
	},
	{
		Name:    "formatters",
		Aliases: []string{"format", "formatting"},
		Title:   "Formatters",
		Summary: "External formatting tools and fallback behaviour",
		Content: topicFormatters,
	},
	{
		Name:    "config",
		Aliases: []string{"configuration", "yaml"},
		Title:   "Configuration Reference",
		Summary: "Config file schema, fields, and defaults",
		Content: topicConfig,
	},
	{
		Name:    "server",
		Aliases: []string{"api", "http"},
		Title:   "HTTP API",
		Summary: "Endpoints served by monozip serve",
		Content: topicServer,
	},
}

const topicQuickstart = `QUICK START

monozip turns a paste of several source files into one zip archive.

  1. Save the paste to a file, for example paste.txt:

       src/main.go
       package main

       func main() {}
       README.md
       # demo

  2. Build the archive:

       monozip build paste.txt --out project.zip

     Use "-" or no argument to read the paste from stdin.

  3. Optionally append a starter preset:

       monozip build paste.txt --preset rust

  4. Or run the HTTP service:

       monozip serve

Run "monozip init" to write an editable monozip.yaml and presets.yaml, and
"monozip doctor" to check that the configured formatters work.
`

const topicInput = `PASTE FORMAT

The paste is read line by line. A line that, once trimmed, looks like a
file path starts a new file:

  - letters, digits, "_", "-", "/" and "." only
  - ends in ".<ext>" where ext is letters or digits

Examples: main.go, src/app/page.tsx, .env.local, a-b_c.d/e.f.

Every following line belongs to that file until the next path line. File
content is trimmed of leading and trailing whitespace. A path with no
non-blank content is dropped, so "a.txt" directly followed by "b.txt"
produces only b.txt (if b.txt has content).

Text before the first path line is discarded.

Lines copied from code viewer chrome are dropped wherever they appear:
tsx, ts, js, jsx, download, copy code, wrap (case-insensitive). Add more
with the noise-tokens config key.

Any line shaped like a file name splits the file, even inside content.
A line reading "config.json" in the middle of a README starts a new file.

The same path may appear twice. Both copies are written to the archive;
the report keeps the last one.
`

const topicPresets = `PRESETS

A preset is a named set of starter files appended after the pasted files.
An unknown preset name is ignored.

Built-in presets:

  nextjs     pages/index.tsx
  solidity   contracts/MyContract.sol
  rust       src/main.rs

List the active catalog with "monozip presets".

To customise, point the presets config key at a YAML file:

  - key: go
    label: Go Starter
    files:
      go.mod: |-
        module example.com/demo
      main.go: |-
        package main

Files keep the order they are declared in. Keys must be unique, and each
preset needs at least one file.
`

const topicFormatters = `FORMATTERS

Each file is offered to the formatter registered for its extension (the
text after the last "." in the file name). Content is piped to the tool's
stdin and the formatted result is read from stdout.

Formatting never fails a build. The original content is kept when:

  - no formatter handles the extension
  - the tool is not installed
  - the tool exits non-zero or times out
  - the tool prints nothing

Defaults:

  prettier   ts tsx js jsx   npx prettier --parser typescript   20s
  rustfmt    rs              rustfmt --edition 2021            10s

Args may reference $LANG (the extension being formatted) and environment
variables. Tools run in their own process group and the whole group is
killed on timeout.

Set "formatters: []" to disable formatting entirely.
`

const topicConfig = `CONFIGURATION REFERENCE

monozip reads monozip.yaml from the working directory, or the file given
with --config. A missing default file means built-in defaults.

  listen             address for "monozip serve"            ":5000"
  concurrency        formatter processes at once, 0 = CPUs   0
  max-request-bytes  largest /generate body                  10485760
  presets            catalog file, relative to the config    built-in
  noise-tokens       extra lines to drop from pastes         []
  formatters         list, see below                         prettier, rustfmt

Each formatter:

  name        unique name (required)
  extensions  file extensions without the dot (required)
  command     executable (required)
  args        argument list
  timeout     seconds, default 10

An extension may only be handled by one formatter.
`

const topicServer = `HTTP API

POST /generate
  Request:  {"code": "<paste>", "preset": "<key>"}
  Response: {"zip_base64", "filename", "total_files", "total_size",
             "languages", "report": {"<path>": {"lines", "lang"}},
             "digest"}
  Headers:  ETag (archive sha256), X-Request-Id

  400 {"error": "No files found"} when neither the paste nor the preset
      produced a file, or the body is not valid JSON.
  413 when the body exceeds max-request-bytes.
  500 when the archive could not be written.

GET /presets
  [{"key", "label", "files": ["<path>", ...]}]

GET /healthz
  {"status": "ok"}

Every response carries X-Request-Id. A client-supplied X-Request-Id is
echoed back and used in the logs.
`
