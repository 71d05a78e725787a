package testdata

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/jask/sage/internal/database/repository"
	"github.com/jask/sage/internal/service"
)

// Services bundles the services used by Seed.
type Services struct {
	Users       *service.UserService
	Locations   *service.LocationService
	Permissions *service.PermissionService
}

// Counts reports what Seed created.
type Counts struct {
	Locations int
	Users     int
	Grants    int
}

var (
	buildings = []string{"North", "South", "Annex"}
	rooms     = []string{"Atrium", "Boardroom", "Library", "Workshop", "Studio", "Lab", "Lounge", "Gallery"}
	first     = []string{"Ada", "Grace", "Alan", "Edsger", "Barbara", "Ken", "Radia", "Linus", "Margaret", "Donald", "Frances", "John"}
	last      = []string{"Lovelace", "Hopper", "Turing", "Dijkstra", "Liskov", "Thompson", "Perlman", "Torvalds", "Hamilton", "Knuth", "Allen", "Backus"}
	roles     = []string{repository.RoleAdmin, repository.RoleStaff, repository.RoleMember, repository.RoleMember}
)

// Seed fills the database with a sample organisation large enough to
// scroll every list. Names are derived from the index so re-running
// updates in place instead of piling up rows.
func Seed(ctx context.Context, svc Services, seed uint64) (Counts, error) {
	r := rand.New(rand.NewPCG(seed, seed^0x5eed))
	var out Counts

	var locs []repository.Location
	for i, b := range buildings {
		for j, room := range rooms {
			name := fmt.Sprintf("%s %s %d", b, room, i*len(rooms)+j+1)
			loc, _, err := svc.Locations.Save(ctx, service.LocationInput{
				ID:       existingLocationID(ctx, svc.Locations, name),
				Name:     name,
				Building: b,
				Capacity: 4 + r.IntN(60),
			})
			if err != nil {
				return out, fmt.Errorf("seed location %q: %w", name, err)
			}
			locs = append(locs, loc)
			out.Locations++
		}
	}

	perms, err := svc.Permissions.Permissions.List(ctx)
	if err != nil {
		return out, fmt.Errorf("list permissions: %w", err)
	}

	for i := range len(first) * 2 {
		fn, ln := first[i%len(first)], last[(i*5)%len(last)]
		email := strings.ToLower(fmt.Sprintf("%s.%s%d@example.org", fn, ln, i))
		in := service.UserInput{
			Name:       fn + " " + ln,
			Email:      email,
			Role:       roles[r.IntN(len(roles))],
			LocationID: locs[r.IntN(len(locs))].ID,
		}
		if existing, err := svc.Users.Users.ByEmail(ctx, email); err == nil {
			in.ID = existing.ID
		}
		u, err := svc.Users.Save(ctx, in)
		if err != nil {
			return out, fmt.Errorf("seed user %q: %w", email, err)
		}
		out.Users++

		if len(perms) == 0 || r.IntN(3) == 0 {
			continue
		}
		p := perms[r.IntN(len(perms))]
		added, err := svc.Permissions.Grant(ctx, u.ID, p.ID, *u.LocationID)
		if err != nil {
			return out, fmt.Errorf("seed grant for %q: %w", email, err)
		}
		if added {
			out.Grants++
		}
	}
	return out, nil
}

func existingLocationID(ctx context.Context, locs *service.LocationService, name string) string {
	all, err := locs.Locations.List(ctx)
	if err != nil {
		return ""
	}
	for _, l := range all {
		if strings.EqualFold(l.Name, name) {
			return l.ID
		}
	}
	return ""
}
