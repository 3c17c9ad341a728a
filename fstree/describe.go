// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fstree

import (
	"mime"
	"path/filepath"

	"github.com/h2non/filetype"
)

// unknownMime is the description of files of unknown type.
const unknownMime = "application/octet-stream"

// Describe returns the mime type of the file at the given path, detected
// from its content, or from its extension if the content is not
// recognized.
func Describe(path string) string {
	kind, err := filetype.MatchFile(path)
	if err == nil && kind != filetype.Unknown {
		return kind.MIME.Value
	}
	if mt := mime.TypeByExtension(filepath.Ext(path)); mt != "" {
		return mt
	}
	return unknownMime
}
