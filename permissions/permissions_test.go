/*
 * Copyright 2022 The Gremlins Authors
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

package permissions_test

import (
	"testing"

	"github.com/go-gremlins/mutagremlins/permissions"
)

func TestDecideDefaultAllow(t *testing.T) {
	p := permissions.New()
	if !p.IsEmpty() {
		t.Fatalf("expected a fresh Permissions to be empty")
	}
	got := p.Decide(permissions.Mutate, []permissions.Probe{permissions.TypeProbe("Literal")})
	if got != permissions.Allow {
		t.Errorf("expected Allow with no rules registered")
	}
}

func TestDecideFirstMatchWins(t *testing.T) {
	p := permissions.New()
	p.Add(permissions.Action{Verb: permissions.Mutate, Scope: permissions.TypeScope(permissions.ValueObject("Literal", permissions.Deny))})
	p.Add(permissions.Action{Verb: permissions.Mutate, Scope: permissions.TypeScope(permissions.AnyObject(permissions.Allow))})

	got := p.Decide(permissions.Mutate, []permissions.Probe{permissions.TypeProbe("Literal")})
	if got != permissions.Deny {
		t.Errorf("expected the first registered rule (Deny) to win, got %v", got)
	}
}

func TestDecideScopeAnyShortCircuits(t *testing.T) {
	p := permissions.New()
	p.Add(permissions.Action{Verb: permissions.Visit, Scope: permissions.AnyScope(permissions.Deny)})
	p.Add(permissions.Action{Verb: permissions.Visit, Scope: permissions.TypeScope(permissions.AnyObject(permissions.Allow))})

	got := p.Decide(permissions.Visit, []permissions.Probe{permissions.TypeProbe("anything")})
	if got != permissions.Deny {
		t.Errorf("expected AnyScope rule to apply unconditionally, got %v", got)
	}
}

func TestDecideVerbMustMatch(t *testing.T) {
	p := permissions.New()
	p.Add(permissions.Action{Verb: permissions.Mutate, Scope: permissions.AnyScope(permissions.Deny)})

	got := p.Decide(permissions.Visit, []permissions.Probe{permissions.TypeProbe("Literal")})
	if got != permissions.Allow {
		t.Errorf("expected a Mutate-only rule to leave Visit queries unaffected, got %v", got)
	}
}

func TestDecideObjectAnyMatchesWithinScope(t *testing.T) {
	p := permissions.New()
	p.Add(permissions.Action{Verb: permissions.Mutate, Scope: permissions.ChildrenScope(permissions.AnyObject(permissions.Deny))})

	got := p.Decide(permissions.Mutate, []permissions.Probe{permissions.ChildrenProbe("Constructor")})
	if got != permissions.Deny {
		t.Errorf("expected ObjectAny within a ChildrenScope to match any ancestor name, got %v", got)
	}
}

func TestDecideNoProbeMatch(t *testing.T) {
	p := permissions.New()
	p.Add(permissions.Action{Verb: permissions.Mutate, Scope: permissions.NameScope(permissions.ValueObject("transfer", permissions.Deny))})

	got := p.Decide(permissions.Mutate, []permissions.Probe{permissions.TypeProbe("Literal")})
	if got != permissions.Allow {
		t.Errorf("expected no matching probe to default to Allow, got %v", got)
	}
}

func TestHave(t *testing.T) {
	p := permissions.New()
	action := permissions.Action{Verb: permissions.Mutate, Scope: permissions.TypeScope(permissions.ValueObject("Literal", permissions.Deny))}
	p.Add(action)

	if p.Have(action) {
		t.Errorf("Have should report the registered rule's own Perm (Deny), not true/allow")
	}

	unknown := permissions.Action{Verb: permissions.Mutate, Scope: permissions.TypeScope(permissions.ValueObject("BinaryOperation", permissions.Deny))}
	if !p.Have(unknown) {
		t.Errorf("expected Have to default to true (Allow) for an unregistered query")
	}
}

func TestAddRemoveClear(t *testing.T) {
	p := permissions.New()
	a := permissions.Action{Verb: permissions.Mutate, Scope: permissions.AnyScope(permissions.Deny)}
	p.Add(a)
	if p.Len() != 1 {
		t.Fatalf("expected Len 1 after Add, got %d", p.Len())
	}

	p.Remove(a)
	if p.Len() != 0 {
		t.Fatalf("expected Len 0 after Remove, got %d", p.Len())
	}

	p.Add(a)
	p.Clear()
	if !p.IsEmpty() {
		t.Errorf("expected Clear to empty the rule list")
	}
}
