package level

import (
	"fmt"
	"image"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const (
	sqlInsertLevel = `INSERT INTO levels (id, source, width, height, tilewidth, tileheight, firstgid, created)
		VALUES (:id, :source, :width, :height, :tilewidth, :tileheight, :firstgid, :created);`
	sqlInsertTiles = `INSERT INTO tiles (level_id, layer, x, y, idx, alpha)
		VALUES (:level_id, :layer, :x, :y, :idx, :alpha);`
	sqlInsertObjects = `INSERT INTO objects (level_id, seq, name, type, x, y, width, height, tile, src_x, src_y, src_w, src_h)
		VALUES (:level_id, :seq, :name, :type, :x, :y, :width, :height, :tile, :src_x, :src_y, :src_w, :src_h);`
	sqlInsertProps = `INSERT INTO properties (level_id, object_seq, name, value)
		VALUES (:level_id, :object_seq, :name, :value);`

	// rows per multi-row insert, keeps us well under sqlite's bound variable limit
	insertBatch = 500
)

// Index stores loaded levels in a sqlite database so other tools can query
// objects & tiles without parsing TMX (or decoding images).
type Index struct {
	filename string
	db       *sqlx.DB
}

// IndexedLevel is the summary of a level held in an Index
type IndexedLevel struct {
	ID         string `db:"id"`
	Source     string `db:"source"`
	Width      int    `db:"width"`
	Height     int    `db:"height"`
	TileWidth  int    `db:"tilewidth"`
	TileHeight int    `db:"tileheight"`
	FirstGID   int    `db:"firstgid"`
	Created    string `db:"created"`
}

// OpenIndex given it's filename (database file) on disk.
// Will create if it doesn't exist.
func OpenIndex(fname string) (*Index, error) {
	db, err := sqlx.Open("sqlite3", fname)
	if err != nil {
		return nil, err
	}

	idx := &Index{db: db, filename: fname}
	if err := idx.init(); err != nil {
		db.Close()
		return nil, err
	}
	return idx, nil
}

// Filename returns the path to the index on disk
func (i *Index) Filename() string {
	return i.filename
}

// Close the underlying database
func (i *Index) Close() error {
	return i.db.Close()
}

// Put writes the whole level (tiles, objects & their properties) into the
// index & returns the new level ID.
func (i *Index) Put(source string, l *Level) (string, error) {
	id := uuid.New().String()

	tiles := []dbTile{}
	for li, layer := range l.Layers {
		for _, t := range layer.Tiles {
			tiles = append(tiles, dbTile{
				LevelID: id,
				Layer:   li,
				X:       t.Pos.X / l.TileWidth,
				Y:       t.Pos.Y / l.TileHeight,
				Index:   t.Index,
				Alpha:   int(t.Tint.A),
			})
		}
	}

	objects := []dbObject{}
	props := []dbProp{}
	for seq, o := range l.Objects {
		objects = append(objects, newDBObject(id, seq, o))
		for _, k := range o.Properties.Keys() {
			props = append(props, dbProp{LevelID: id, ObjectSeq: seq, Name: k, Value: o.Properties.Get(k)})
		}
	}

	txn, err := i.db.Beginx()
	if err != nil {
		return "", err
	}

	_, err = txn.NamedExec(sqlInsertLevel, IndexedLevel{
		ID:         id,
		Source:     source,
		Width:      l.Width,
		Height:     l.Height,
		TileWidth:  l.TileWidth,
		TileHeight: l.TileHeight,
		FirstGID:   l.FirstTileID,
		Created:    time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		txn.Rollback()
		return "", err
	}

	if err = insertRows(txn, sqlInsertTiles, tiles); err != nil {
		txn.Rollback()
		return "", err
	}
	if err = insertRows(txn, sqlInsertObjects, objects); err != nil {
		txn.Rollback()
		return "", err
	}
	if err = insertRows(txn, sqlInsertProps, props); err != nil {
		txn.Rollback()
		return "", err
	}

	return id, txn.Commit()
}

// insertRows runs a multi-row named insert in batches. sqlx refuses empty
// slices so we skip those.
func insertRows[T any](txn *sqlx.Tx, query string, rows []T) error {
	for start := 0; start < len(rows); start += insertBatch {
		end := start + insertBatch
		if end > len(rows) {
			end = len(rows)
		}
		if _, err := txn.NamedExec(query, rows[start:end]); err != nil {
			return err
		}
	}
	return nil
}

// Levels returns all indexed levels, oldest first
func (i *Index) Levels() ([]IndexedLevel, error) {
	levels := []IndexedLevel{}
	err := i.db.Select(&levels, `SELECT id, source, width, height, tilewidth, tileheight, firstgid, created FROM levels ORDER BY created, rowid;`)
	return levels, err
}

// Level returns the indexed level with the given ID
func (i *Index) Level(id string) (*IndexedLevel, error) {
	levels := []IndexedLevel{}
	err := i.db.Select(&levels, `SELECT id, source, width, height, tilewidth, tileheight, firstgid, created FROM levels WHERE id=?;`, id)
	if err != nil {
		return nil, err
	}
	if len(levels) == 0 {
		return nil, fmt.Errorf("level %s not found in index", id)
	}
	return &levels[0], nil
}

// Objects returns every object of a level in document order
func (i *Index) Objects(levelID string) ([]*Object, error) {
	return i.objects(`SELECT * FROM objects WHERE level_id=? ORDER BY seq;`, levelID)
}

// ObjectsNamed returns the objects of a level called `name` in document order
func (i *Index) ObjectsNamed(levelID, name string) ([]*Object, error) {
	return i.objects(`SELECT * FROM objects WHERE level_id=? AND name=? ORDER BY seq;`, levelID, name)
}

// objects runs an object query & attaches each objects properties
func (i *Index) objects(query string, levelID string, args ...interface{}) ([]*Object, error) {
	rows := []dbObject{}
	if err := i.db.Select(&rows, query, append([]interface{}{levelID}, args...)...); err != nil {
		return nil, err
	}

	props := []dbProp{}
	err := i.db.Select(&props, `SELECT level_id, object_seq, name, value FROM properties WHERE level_id=?;`, levelID)
	if err != nil {
		return nil, err
	}

	bySeq := map[int]*Properties{}
	for _, p := range props {
		ps, ok := bySeq[p.ObjectSeq]
		if !ok {
			ps = NewProperties()
			bySeq[p.ObjectSeq] = ps
		}
		ps.Set(p.Name, p.Value)
	}

	result := make([]*Object, 0, len(rows))
	for _, r := range rows {
		o := r.object()
		if ps, ok := bySeq[r.Seq]; ok {
			o.Properties = ps
		}
		result = append(result, o)
	}
	return result, nil
}

// TileCount returns the number of placed tiles held for a level
func (i *Index) TileCount(levelID string) (int, error) {
	var n int
	err := i.db.Get(&n, `SELECT count(*) FROM tiles WHERE level_id=?;`, levelID)
	return n, err
}

// init creates some DB tables for us if they don't exist
func (i *Index) init() error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS levels(
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		tilewidth INTEGER NOT NULL,
		tileheight INTEGER NOT NULL,
		firstgid INTEGER NOT NULL,
		created TEXT NOT NULL
	    );`,
		`CREATE TABLE IF NOT EXISTS tiles(
		level_id TEXT NOT NULL,
		layer INTEGER NOT NULL,
		x INTEGER NOT NULL,
		y INTEGER NOT NULL,
		idx INTEGER NOT NULL,
		alpha INTEGER NOT NULL
	    );`,
		`CREATE TABLE IF NOT EXISTS objects(
		level_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		x INTEGER NOT NULL,
		y INTEGER NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		tile INTEGER NOT NULL,
		src_x INTEGER NOT NULL,
		src_y INTEGER NOT NULL,
		src_w INTEGER NOT NULL,
		src_h INTEGER NOT NULL,
		PRIMARY KEY (level_id, seq)
	    );`,
		`CREATE TABLE IF NOT EXISTS properties(
		level_id TEXT NOT NULL,
		object_seq INTEGER NOT NULL,
		name TEXT NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (level_id, object_seq, name)
	    );`,
	}

	for _, t := range tables {
		if _, err := i.db.Exec(t); err != nil {
			return err
		}
	}
	return nil
}

// dbTile is a single placed tile. X,Y are in tiles.
type dbTile struct {
	LevelID string `db:"level_id"`
	Layer   int    `db:"layer"`
	X       int    `db:"x"`
	Y       int    `db:"y"`
	Index   int    `db:"idx"`
	Alpha   int    `db:"alpha"`
}

// dbObject is an object & where it's tile lives in the atlas
type dbObject struct {
	LevelID string `db:"level_id"`
	Seq     int    `db:"seq"`
	Name    string `db:"name"`
	Type    string `db:"type"`
	X       int    `db:"x"`
	Y       int    `db:"y"`
	Width   int    `db:"width"`
	Height  int    `db:"height"`
	Tile    int    `db:"tile"`
	SrcX    int    `db:"src_x"`
	SrcY    int    `db:"src_y"`
	SrcW    int    `db:"src_w"`
	SrcH    int    `db:"src_h"`
}

// newDBObject crafts a dbObject struct given it's inputs
func newDBObject(levelID string, seq int, o *Object) dbObject {
	return dbObject{
		LevelID: levelID,
		Seq:     seq,
		Name:    o.Name,
		Type:    o.Type,
		X:       o.Rect.Left,
		Y:       o.Rect.Top,
		Width:   o.Rect.Width,
		Height:  o.Rect.Height,
		Tile:    o.TileIndex,
		SrcX:    o.Visual.Min.X,
		SrcY:    o.Visual.Min.Y,
		SrcW:    o.Visual.Dx(),
		SrcH:    o.Visual.Dy(),
	}
}

func (d dbObject) object() *Object {
	o := &Object{
		Name:       d.Name,
		Type:       d.Type,
		Rect:       Rect{Left: d.X, Top: d.Y, Width: d.Width, Height: d.Height},
		Properties: NewProperties(),
		TileIndex:  d.Tile,
	}
	if d.Tile >= 0 {
		o.Visual = image.Rect(d.SrcX, d.SrcY, d.SrcX+d.SrcW, d.SrcY+d.SrcH)
	}
	return o
}

// dbProp is one property of one object
type dbProp struct {
	LevelID   string `db:"level_id"`
	ObjectSeq int    `db:"object_seq"`
	Name      string `db:"name"`
	Value     string `db:"value"`
}
