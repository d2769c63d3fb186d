//  Copyright 2015 by Leipzig University Library, http://ub.uni-leipzig.de
//                    The Finc Authors, http://finc.info
//                    Martin Czygan, <martin.czygan@uni-leipzig.de>
//
// This file is part of some open source application.
//
// Some open source application is free software: you can redistribute
// it and/or modify it under the terms of the GNU General Public
// License as published by the Free Software Foundation, either
// version 3 of the License, or (at your option) any later version.
//
// Some open source application is distributed in the hope that it will
// be useful, but WITHOUT ANY WARRANTY; without even the implied warranty
// of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Foobar.  If not, see <http://www.gnu.org/licenses/>.
//
// @license GPL-3.0+ <http://spdx.org/licenses/GPL-3.0+>

package catalog

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"

	"github.com/miku/indexoai"
)

// maybeCompressedFile transparently decompresses gzip files and reads
// anything else as is.
type maybeCompressedFile struct {
	file *os.File
	r    io.Reader
	gz   *gzip.Reader
}

// openMaybeCompressed opens filename, sniffing for a gzip header.
func openMaybeCompressed(filename string) (*maybeCompressedFile, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	gz, err := gzip.NewReader(bufio.NewReader(file))
	switch err {
	case nil:
		return &maybeCompressedFile{file: file, r: gz, gz: gz}, nil
	case gzip.ErrHeader, io.ErrUnexpectedEOF, io.EOF:
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			file.Close()
			return nil, err
		}
		return &maybeCompressedFile{file: file, r: bufio.NewReader(file)}, nil
	default:
		file.Close()
		return nil, err
	}
}

func (f *maybeCompressedFile) Read(p []byte) (int, error) {
	return f.r.Read(p)
}

func (f *maybeCompressedFile) Close() error {
	if f.gz != nil {
		if err := f.gz.Close(); err != nil {
			f.file.Close()
			return err
		}
	}
	return f.file.Close()
}

// ReadJSONLFile reads records from a JSON lines file, which may be gzip
// compressed.
func ReadJSONLFile(filename string) ([]indexoai.Record, error) {
	f, err := openMaybeCompressed(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadJSONL(f)
}
