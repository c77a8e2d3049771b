// Copyright 2024 The future Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package future

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSynchronous(t *testing.T) {
	ran := false
	Synchronous{}.Submit(func() { ran = true })
	assert.True(t, ran, "task must run before Submit returns")
}

func TestGoExecutor(t *testing.T) {
	done := make(chan struct{})
	GoExecutor{}.Submit(func() { close(done) })
	<-done
}

func TestBlockOn_Routing(t *testing.T) {
	t.Run("plain executor runs block inline", func(t *testing.T) {
		ran := false
		blockOn(GoExecutor{}, func() { ran = true })
		assert.True(t, ran)
	})

	t.Run("blocker executor gets the block", func(t *testing.T) {
		pool := NewPool(WithMaxWorkers(1))
		defer pool.StopAndWait()

		ran := false
		blockOn(pool, func() { ran = true })
		assert.True(t, ran)
	})
}
