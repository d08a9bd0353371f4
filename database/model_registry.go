/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"reflect"
	"sort"
	"sync"
)

// SQLModel is a bun model created by the base migration. Models with a
// lower priority are created first.
type SQLModel interface {
	Instance() interface{}
	Priority() int
}

// ModelAdapter pairs a model pointer with its creation priority.
type ModelAdapter struct {
	instance interface{}
	priority int
}

func NewModelAdapter(instance interface{}, priority int) SQLModel {
	return &ModelAdapter{instance: instance, priority: priority}
}

func (a *ModelAdapter) Instance() interface{} { return a.instance }

func (a *ModelAdapter) Priority() int { return a.priority }

var registry = struct {
	sync.RWMutex
	models []SQLModel
	seen   map[reflect.Type]struct{}
}{seen: map[reflect.Type]struct{}{}}

// RegisteredModel adds a model to the process registry. A model type that is
// already registered is ignored.
func RegisteredModel(model SQLModel) {
	registry.Lock()
	defer registry.Unlock()
	typ := reflect.TypeOf(model.Instance())
	if _, ok := registry.seen[typ]; ok {
		return
	}
	registry.seen[typ] = struct{}{}
	registry.models = append(registry.models, model)
}

// RegisteredModelInstances returns registered model pointers by ascending
// priority, keeping registration order for equal priorities.
func RegisteredModelInstances() []interface{} {
	registry.RLock()
	models := make([]SQLModel, len(registry.models))
	copy(models, registry.models)
	registry.RUnlock()

	sort.SliceStable(models, func(i, j int) bool {
		return models[i].Priority() < models[j].Priority()
	})
	instances := make([]interface{}, len(models))
	for i, m := range models {
		instances[i] = m.Instance()
	}
	return instances
}
