// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package shell

import (
	"bufio"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

// splitRecord breaks a dataset line into key and value. A tab separates
// them if present, otherwise the first '='. A bare key gets an empty value.
func splitRecord(line string) (string, string) {
	if k, v, ok := strings.Cut(line, "\t"); ok {
		return strings.TrimSpace(k), v
	}
	if k, v, ok := strings.Cut(line, "="); ok {
		return strings.TrimSpace(k), strings.TrimSpace(v)
	}
	return strings.TrimSpace(line), ""
}

// Load bulk-inserts a dataset of key<TAB>value or key=value lines. Blank
// lines and lines starting with '#' are skipped. It stops at the first key
// that cannot be parsed and returns the number of records stored so far.
func (m *Manager[K]) Load(r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for datasets with long values
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	loaded := 0
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		rawKey, value := splitRecord(line)
		k, err := m.session.key(rawKey)
		if err != nil {
			return loaded, errors.Wrapf(err, "line %d", lineNo)
		}
		if _, _, err := m.session.m.Put(k, value); err != nil {
			return loaded, errors.Wrapf(err, "line %d", lineNo)
		}
		loaded++
	}

	if err := scanner.Err(); err != nil {
		return loaded, errors.Wrap(err, "reading dataset")
	}

	m.log.WithFields(logrus.Fields{
		"records": loaded,
		"size":    m.session.m.Len(),
		"kind":    m.session.m.Kind(),
	}).Info("dataset loaded")
	return loaded, nil
}
