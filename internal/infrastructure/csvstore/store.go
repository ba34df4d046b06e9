// Package csvstore guarda los ledgers en archivos CSV, uno por ledger, bajo un directorio.
// Cada unidad de trabajo toma un lock de archivo sobre el directorio (exclusivo para Run,
// compartido para View), recarga los ledgers que otro proceso haya reescrito y opera sobre
// una copia de las tablas. El commit escribe archivos temporales, los renombra y luego
// publica la copia.
package csvstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"github.com/jhoicas/sakti-pos/internal/application/ports"
	"github.com/jhoicas/sakti-pos/pkg/logger"
)

// LockFile archivo de lock dentro del directorio de datos.
const LockFile = ".sakti.lock"

const lockRetry = 20 * time.Millisecond

var _ ports.TxRunner = (*Store)(nil)

var errReadOnly = errors.New("csvstore: escritura dentro de View")

// Store almacén de archivos planos; implementa ports.TxRunner.
// Varios procesos (API, cmd/snapshot, cmd/import_legacy) pueden abrir el mismo directorio.
type Store struct {
	dir  string
	log  *logger.Logger
	lock *flock.Flock

	mu     sync.Mutex
	data   *tables
	stamps map[string]fileStamp // nil obliga a recargar todo
}

// Open crea el directorio si no existe y carga los seis ledgers. Un archivo ausente es un ledger vacío.
func Open(dir string, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("csvstore")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("csvstore: crear %s: %w", dir, err)
	}
	s := &Store{
		dir:  dir,
		log:  log,
		lock: flock.New(filepath.Join(dir, LockFile)),
		data: &tables{},
	}
	if err := s.acquire(context.Background(), true); err != nil {
		return nil, err
	}
	err := s.refresh()
	s.release()
	if err != nil {
		return nil, err
	}
	log.Info().Str("dir", dir).
		Int("stock", len(s.data.stock)).
		Int("sales", len(s.data.sales)).
		Msg("csvstore abierto")
	return s, nil
}

// Dir directorio de datos.
func (s *Store) Dir() string { return s.dir }

// Close libera el archivo de lock.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lock.Close()
}

// Run ejecuta fn sobre una copia de las tablas con el lock exclusivo tomado. Si fn retorna nil
// se reescriben los archivos de los ledgers tocados y la copia pasa a ser el estado vigente;
// si no, se descarta.
func (s *Store) Run(ctx context.Context, fn func(repos ports.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.acquire(ctx, false); err != nil {
		return err
	}
	defer s.release()
	if err := s.refresh(); err != nil {
		return err
	}

	u := &unit{t: s.data.clone(), dirty: map[string]bool{}}
	if err := fn(u.repositories()); err != nil {
		return err
	}
	if len(u.dirty) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	renamed, err := s.persist(u)
	if err != nil {
		if renamed > 0 {
			// Disco y memoria difieren: la próxima unidad de trabajo relee todo.
			s.stamps = nil
			s.log.Warn().Err(err).Int("renamed", renamed).Msg("csvstore commit parcial")
		}
		return err
	}
	s.data = u.t
	if err := s.restamp(u.dirty); err != nil {
		s.stamps = nil
	}
	s.log.Debug().Strs("ledgers", keys(u.dirty)).Msg("csvstore commit")
	return nil
}

// View ejecuta fn con repositorios de solo lectura sobre el estado vigente en disco.
// El lock compartido se suelta antes de llamar a fn: las tablas publicadas no se mutan.
func (s *Store) View(ctx context.Context, fn func(repos ports.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := s.current(ctx)
	if err != nil {
		return err
	}
	u := &unit{t: data, readOnly: true}
	return fn(u.repositories())
}

func (s *Store) current(ctx context.Context) (*tables, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.acquire(ctx, true); err != nil {
		return nil, err
	}
	defer s.release()
	if err := s.refresh(); err != nil {
		return nil, err
	}
	return s.data, nil
}

func (s *Store) acquire(ctx context.Context, shared bool) error {
	var (
		ok  bool
		err error
	)
	if shared {
		ok, err = s.lock.TryRLockContext(ctx, lockRetry)
	} else {
		ok, err = s.lock.TryLockContext(ctx, lockRetry)
	}
	if err != nil {
		return fmt.Errorf("csvstore: lock %s: %w", s.dir, err)
	}
	if !ok {
		return fmt.Errorf("csvstore: lock %s no disponible", s.dir)
	}
	return nil
}

func (s *Store) release() {
	if err := s.lock.Unlock(); err != nil {
		s.log.Warn().Err(err).Msg("csvstore: soltar lock")
	}
}

// fileStamp identidad de un archivo de ledger en el último load. info nil = archivo ausente.
type fileStamp struct {
	info os.FileInfo
}

func (a fileStamp) same(b fileStamp) bool {
	if a.info == nil || b.info == nil {
		return a.info == nil && b.info == nil
	}
	return os.SameFile(a.info, b.info) &&
		a.info.Size() == b.info.Size() &&
		a.info.ModTime().Equal(b.info.ModTime())
}

func stampOf(dir, file string) (fileStamp, error) {
	fi, err := os.Stat(filepath.Join(dir, file))
	if errors.Is(err, os.ErrNotExist) {
		return fileStamp{}, nil
	}
	if err != nil {
		return fileStamp{}, fmt.Errorf("csvstore: stat %s: %w", file, err)
	}
	return fileStamp{info: fi}, nil
}

// refresh relee los ledgers cuyo archivo cambió desde el último load. Requiere el lock tomado.
// Si falla, s.data y s.stamps quedan como estaban.
func (s *Store) refresh() error {
	next := *s.data
	stamps := make(map[string]fileStamp, len(ledgerFiles))
	for k, v := range s.stamps {
		stamps[k] = v
	}
	steps := []func() (bool, error){
		func() (bool, error) { return reload(s.dir, stockCodec, &next.stock, stamps) },
		func() (bool, error) { return reload(s.dir, saleCodec, &next.sales, stamps) },
		func() (bool, error) { return reload(s.dir, supplierCodec, &next.suppliers, stamps) },
		func() (bool, error) { return reload(s.dir, receivableCodec, &next.receivables, stamps) },
		func() (bool, error) { return reload(s.dir, expenseCodec, &next.expenses, stamps) },
		func() (bool, error) { return reload(s.dir, snapshotCodec, &next.snapshots, stamps) },
	}
	changed := false
	for _, step := range steps {
		c, err := step()
		if err != nil {
			return err
		}
		changed = changed || c
	}
	if changed {
		s.data = &next
		s.log.Debug().Msg("csvstore recargado desde disco")
	}
	s.stamps = stamps
	return nil
}

func reload[T any](dir string, c codec[T], dst *[]*T, stamps map[string]fileStamp) (bool, error) {
	st, err := stampOf(dir, c.file)
	if err != nil {
		return false, err
	}
	if prev, ok := stamps[c.file]; ok && prev.same(st) {
		return false, nil
	}
	items, err := load(dir, c)
	if err != nil {
		return false, err
	}
	*dst = items
	stamps[c.file] = st
	return true, nil
}

// restamp registra los archivos recién escritos para no releerlos en la próxima unidad.
func (s *Store) restamp(dirty map[string]bool) error {
	for ledger := range dirty {
		file := ledgerFiles[ledger]
		st, err := stampOf(s.dir, file)
		if err != nil {
			return err
		}
		s.stamps[file] = st
	}
	return nil
}

func (u *unit) repositories() ports.Repositories {
	return ports.Repositories{
		Stock:       &stockRepo{u: u},
		Sales:       &saleRepo{u: u},
		Suppliers:   &supplierRepo{u: u},
		Receivables: &receivableRepo{u: u},
		Expenses:    &expenseRepo{u: u},
		Snapshots:   &snapshotRepo{u: u},
	}
}

type pending struct {
	tmp, final string
}

// persist escribe todos los temporales y después los renombra sobre los archivos finales,
// en orden de nombre. Devuelve cuántos renombres se completaron.
func (s *Store) persist(u *unit) (int, error) {
	var files []pending
	cleanup := func() {
		for _, p := range files {
			_ = os.Remove(p.tmp)
		}
	}
	stage := func(name string, write func(io.Writer) error) error {
		f, err := os.CreateTemp(s.dir, name+".*.tmp")
		if err != nil {
			return err
		}
		files = append(files, pending{tmp: f.Name(), final: filepath.Join(s.dir, name)})
		if err := write(f); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Sync(); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	}

	var err error
	for ledger := range u.dirty {
		switch ledger {
		case ledgerStock:
			err = stage(stockCodec.file, func(w io.Writer) error { return stockCodec.write(w, u.t.stock) })
		case ledgerSales:
			err = stage(saleCodec.file, func(w io.Writer) error { return saleCodec.write(w, u.t.sales) })
		case ledgerSuppliers:
			err = stage(supplierCodec.file, func(w io.Writer) error { return supplierCodec.write(w, u.t.suppliers) })
		case ledgerReceivables:
			err = stage(receivableCodec.file, func(w io.Writer) error { return receivableCodec.write(w, u.t.receivables) })
		case ledgerExpenses:
			err = stage(expenseCodec.file, func(w io.Writer) error { return expenseCodec.write(w, u.t.expenses) })
		case ledgerSnapshots:
			err = stage(snapshotCodec.file, func(w io.Writer) error { return snapshotCodec.write(w, u.t.snapshots) })
		}
		if err != nil {
			cleanup()
			return 0, fmt.Errorf("csvstore: persist %s: %w", ledger, err)
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].final < files[j].final })
	for i, p := range files {
		if err := os.Rename(p.tmp, p.final); err != nil {
			cleanup()
			return i, fmt.Errorf("csvstore: rename %s: %w", p.final, err)
		}
	}
	return len(files), nil
}

func load[T any](dir string, c codec[T]) ([]*T, error) {
	f, err := os.Open(filepath.Join(dir, c.file))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("csvstore: abrir %s: %w", c.file, err)
	}
	defer f.Close()
	items, err := c.read(f)
	if err != nil {
		return nil, fmt.Errorf("csvstore: %w", err)
	}
	return items, nil
}

func keys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
