package society

import "fmt"

const (
	// TblAgents is the name of the sql database table that contains
	// positions, objective values, and social standing (society id, leader
	// and super-leader flags) for every agent at each time step.
	TblAgents = "civagents"
	// TblBest is the name of the sql database table that contains the
	// population member with the lowest objective value at each time step.
	TblBest = "civbest"
)

func (c *Civilization) initdb() error {
	if c.db == nil {
		return nil
	}

	s := "CREATE TABLE IF NOT EXISTS " + TblAgents +
		" (run INTEGER, step INTEGER, agent INTEGER, society INTEGER, leader INTEGER, super INTEGER, obj REAL"
	s += c.xdbsql("define")
	s += ");"

	if _, err := c.db.Exec(s); err != nil {
		return fmt.Errorf("society: creating %v: %w", TblAgents, err)
	}

	s = "CREATE TABLE IF NOT EXISTS " + TblBest + " (run INTEGER, step INTEGER, obj REAL"
	s += c.xdbsql("define")
	s += ");"

	if _, err := c.db.Exec(s); err != nil {
		return fmt.Errorf("society: creating %v: %w", TblBest, err)
	}
	return nil
}

func (c *Civilization) xdbsql(op string) string {
	s := ""
	for i := range c.low {
		if op == "?" {
			s += ",?"
		} else if op == "define" {
			s += fmt.Sprintf(",x%v REAL", i)
		} else if op == "x" {
			s += fmt.Sprintf(",x%v", i)
		} else {
			panic("invalid db op " + op)
		}
	}
	return s
}

func pos2iface(pos []float64) []interface{} {
	iface := []interface{}{}
	for _, v := range pos {
		iface = append(iface, v)
	}
	return iface
}

func (c *Civilization) updateDb(leader, super map[int]bool) {
	if c.db == nil {
		return
	}

	tx, err := c.db.Begin()
	panicif(err)
	defer tx.Commit()

	s0 := "INSERT INTO " + TblAgents + " (run,step,agent,society,leader,super,obj" + c.xdbsql("x") +
		") VALUES (?,?,?,?,?,?,?" + c.xdbsql("?") + ");"
	for i, ind := range c.Pop {
		args := []interface{}{c.runid, c.step, i, c.assign[i], leader[i], super[i], ind.Obj}
		args = append(args, pos2iface(ind.Pos)...)
		_, err := tx.Exec(s0, args...)
		panicif(err)
	}

	s1 := "INSERT INTO " + TblBest + " (run,step,obj" + c.xdbsql("x") + ") VALUES (?,?,?" + c.xdbsql("?") + ");"
	best := c.Pop.Best()
	args := []interface{}{c.runid, c.step, best.Obj}
	args = append(args, pos2iface(best.Pos)...)
	_, err = tx.Exec(s1, args...)
	panicif(err)
}

func panicif(err error) {
	if err != nil {
		panic(err.Error())
	}
}
