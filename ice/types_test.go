package ice

import (
	"fmt"
)

type intBox struct {
	i int
}

type Storage interface {
	Set(i int)
	Get() int
}

type memStorage struct {
	val int
}

func (s *memStorage) Set(i int) { s.val = i }
func (s *memStorage) Get() int  { return s.val }

func NewMemStorage() *memStorage { return &memStorage{} }

type Auther interface {
	Auth(token string) error
}

type yesAuther struct{}

func (a *yesAuther) Auth(token string) error { return nil }

type noAuther struct{}

func (a *noAuther) Auth(token string) error { return fmt.Errorf("bad token %q", token) }

type DB struct {
	s Storage
	a Auther
}

func NewDB(s Storage, a Auther) *DB { return &DB{s, a} }

func (db *DB) IsEven(token string) (bool, error) {
	if err := db.a.Auth(token); err != nil {
		return false, err
	}
	return db.s.Get()%2 == 0, nil
}

func (db *DB) Inc(token string) error {
	if err := db.a.Auth(token); err != nil {
		return err
	}
	db.s.Set(db.s.Get() + 1)
	return nil
}

type Evener struct {
	odder *Odder
}

func MakeEvener(o *Odder) *Evener {
	return &Evener{o}
}

type Odder struct {
	evener *Evener
}

func MakeOdder(e *Evener) *Odder {
	return &Odder{e}
}

type Plugin interface {
	Name() string
}

type pluginA struct {
	id int
}

func (p *pluginA) Name() string { return "a" }

type pluginB struct {
	label string
}

func (p *pluginB) Name() string { return "b:" + p.label }

// namedPlugin is a value type, so equal labels are the same instance to a collection.
type namedPlugin string

func (p namedPlugin) Name() string { return string(p) }

type Host struct {
	plugins *Collection[Plugin]
}

func NewHost(p *Collection[Plugin]) *Host { return &Host{p} }

type ValueHost struct {
	plugins Collection[Plugin]
}

func NewValueHost(p Collection[Plugin]) *ValueHost { return &ValueHost{p} }

type Dep struct{}

type Greedy struct {
	arity int
	s     Storage
	a     Auther
	d     *Dep
}

func NewGreedy1(s Storage) *Greedy { return &Greedy{arity: 1, s: s} }

func NewGreedy3(s Storage, a Auther, d *Dep) *Greedy {
	return &Greedy{arity: 3, s: s, a: a, d: d}
}

func NewGreedy3Too(a Auther, s Storage, d *Dep) *Greedy {
	return &Greedy{arity: -3, s: s, a: a, d: d}
}

type X struct {
	n int
}

type Y struct {
	s string
}

type Pair struct {
	x X
	y Y
	s Storage
}

func NewPair(x X, y Y) *Pair { return &Pair{x: x, y: y} }

type Triple struct {
	Pair
	st Storage
}

func NewTriple(x X, s Storage, y Y) *Triple {
	return &Triple{Pair: Pair{x: x, y: y}, st: s}
}

type embedded struct {
	DB *DB `inject:""`
}

type Injected struct {
	embedded
	Storage   Storage             `inject:""`
	auther    Auther              `inject:"auth"`
	plugins   *Collection[Plugin] `inject:""`
	Untouched Storage
}

type Configurable struct {
	s     Storage
	a     Auther
	calls int
}

func (c *Configurable) SetStorage(s Storage) {
	c.s = s
	c.calls++
}

func (c *Configurable) SetAuther(a Auther) error {
	if _, ok := a.(*noAuther); ok {
		return fmt.Errorf("refusing %T", a)
	}
	c.a = a
	c.calls++
	return nil
}

func (c *Configurable) Broken(a, b int) {}

type Locked struct {
	s Storage
}
