/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Settings is the global configuration, populated by Setup from an optional
// TOML file and otherwise left at its compiled-in defaults.
var (
	Settings conf

	initialized = false
)

// File is the path Setup reads its TOML configuration from. Overridable by
// cmd/hyperbola before calling Setup.
var File = "config.toml"

type conf struct {
	Log    logConfiguration
	Search searchConfiguration
}

// Setup applies compiled-in defaults, then overlays them with whatever File
// decodes to. Safe to call more than once; only the first call has effect.
func Setup() {
	if initialized {
		return
	}

	if _, err := toml.DecodeFile(File, &Settings); err != nil {
		fmt.Println(err)
	}

	setupLogLvl()
	setupSearch()

	initialized = true
}


