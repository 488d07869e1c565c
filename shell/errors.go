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

import "github.com/cockroachdb/errors"

var (
	// ErrUnknownCommand - no handler is registered under the name
	ErrUnknownCommand = errors.New("unknown command")
	// ErrArity - too few or too many arguments
	ErrArity = errors.New("wrong number of arguments")
	// ErrBadKey - an argument could not be parsed in the session's key mode
	ErrBadKey = errors.New("bad key")
	// ErrBadFlag - an inclusive/exclusive flag was not recognised
	ErrBadFlag = errors.New("bad flag")
	// ErrUnknownKeyMode - key mode other than int or string
	ErrUnknownKeyMode = errors.New("unknown key mode")
)
