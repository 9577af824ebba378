package scenario

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-routes/pkg/service"
	"github.com/mattsolo1/grove-routes/pkg/tree"
)

// Result records the outcome of one step. Rejected mutations are results,
// not errors.
type Result struct {
	Step     int    `json:"step"`
	Action   string `json:"action"`
	Target   string `json:"target"`
	Allowed  bool   `json:"allowed"`
	Message  string `json:"message,omitempty"`
	NodeID   string `json:"node_id,omitempty"`
	Path     string `json:"path,omitempty"`
	Endpoint string `json:"endpoint,omitempty"`
}

// Runner plays scenarios against a service it owns.
type Runner struct {
	svc     *service.Service
	logger  *logrus.Entry
	aliases map[string]string
	last    *service.Notification
}

// NewRunner creates a runner with a fresh project service. Notifications
// raised by the service are attached to the step that caused them.
func NewRunner(cfg *service.Config, logger *logrus.Entry, opts ...service.Option) (*Runner, error) {
	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}
	r := &Runner{
		logger:  logger.WithField("component", "scenario"),
		aliases: make(map[string]string),
	}
	opts = append(opts, service.WithNotifier(service.NotifierFunc(func(n service.Notification) {
		r.last = &n
	})))

	svc, err := service.New(cfg, logger, opts...)
	if err != nil {
		return nil, err
	}
	r.svc = svc
	return r, nil
}

// Service returns the service the runner mutates.
func (r *Runner) Service() *service.Service {
	return r.svc
}

// Run plays every step of sc in order. It stops at the first step that
// cannot be played at all: an unknown target or a failed expectation.
// Results collected so far are returned alongside the error.
func (r *Runner) Run(sc *Scenario) ([]Result, error) {
	log := r.logger.WithField("scenario", sc.Name)
	results := make([]Result, 0, len(sc.Steps))

	for i, step := range sc.Steps {
		r.last = nil
		res, err := r.play(i+1, step)
		if err != nil {
			log.WithField("step", i+1).WithError(err).Debug("Scenario aborted")
			return results, fmt.Errorf("step %d (%s): %w", i+1, step.Action(), err)
		}
		if r.last != nil && res.Message == "" {
			res.Message = r.last.Message
		}
		results = append(results, res)
	}

	log.WithField("steps", len(results)).Debug("Scenario finished")
	return results, nil
}

func (r *Runner) play(n int, step Step) (Result, error) {
	res := Result{Step: n, Action: step.Action()}

	switch {
	case step.Add != nil:
		res.Target = step.Add.Parent
		parent, err := r.resolve(step.Add.Parent)
		if err != nil {
			return res, err
		}
		node, err := r.svc.Create(parent, step.Add.Kind)
		if err := r.outcome(&res, err); err != nil {
			return res, err
		}
		if node != nil {
			r.bind(step.Add.As, node.ID)
			r.describe(&res, node)
		}

	case step.Update != nil:
		res.Target = step.Update.Target
		id, err := r.resolve(step.Update.Target)
		if err != nil {
			return res, err
		}
		node, err := r.svc.Update(id, step.Update.Patch())
		if err := r.outcome(&res, err); err != nil {
			return res, err
		}
		if node != nil {
			r.bind(step.Update.As, node.ID)
			r.describe(&res, node)
		}

	case step.Delete != "":
		res.Target = step.Delete
		id, err := r.resolve(step.Delete)
		if err != nil {
			return res, err
		}
		if err := r.outcome(&res, r.svc.Delete(id)); err != nil {
			return res, err
		}

	case step.Select != "":
		res.Target = step.Select
		id, err := r.resolve(step.Select)
		if err != nil {
			return res, err
		}
		if err := r.svc.Select(id); err != nil {
			return res, err
		}
		res.Allowed = true
		res.NodeID = id

	case step.Expect != nil:
		res.Target = step.Expect.Path
		if err := r.expect(step.Expect); err != nil {
			return res, err
		}
		res.Allowed = true

	default:
		return res, errors.New("step has no action")
	}
	return res, nil
}

// outcome folds a mutation error into res. Restriction and reserved-name
// errors are ordinary rejections; anything else aborts the run.
func (r *Runner) outcome(res *Result, err error) error {
	var rerr *service.RestrictionError
	switch {
	case err == nil:
		res.Allowed = true
	case errors.As(err, &rerr):
		res.Message = rerr.Message
	case errors.Is(err, service.ErrReservedName):
		res.Message = err.Error()
	default:
		return err
	}
	return nil
}

func (r *Runner) describe(res *Result, node *tree.Node) {
	res.NodeID = node.ID
	res.Endpoint = node.EndpointString()
	if path, err := r.svc.FullPath(node.ID); err == nil {
		res.Path = path
	}
}

func (r *Runner) bind(alias, id string) {
	if alias != "" {
		r.aliases[alias] = id
	}
}

// resolve turns a path or $alias into a node id.
func (r *Runner) resolve(target string) (string, error) {
	if alias, ok := strings.CutPrefix(target, "$"); ok {
		id, ok := r.aliases[alias]
		if !ok {
			return "", fmt.Errorf("unknown alias %q", target)
		}
		if _, err := r.svc.Find(id); err != nil {
			return "", fmt.Errorf("alias %q: %w", target, err)
		}
		return id, nil
	}
	node, err := r.svc.FindByPath(target)
	if err != nil {
		return "", err
	}
	return node.ID, nil
}

func (r *Runner) expect(e *Expect) error {
	id, err := r.resolve(e.Path)
	if e.Absent {
		if err == nil {
			return fmt.Errorf("expected %s to be absent", e.Path)
		}
		if errors.Is(err, service.ErrNotFound) {
			return nil
		}
		return err
	}
	if err != nil {
		return err
	}

	node, err := r.svc.Find(id)
	if err != nil {
		return err
	}
	if e.Name != "" && node.Name != e.Name {
		return fmt.Errorf("expected name %q, got %q", e.Name, node.Name)
	}
	if e.Routable != nil && *e.Routable != (node.Endpoint != nil) {
		return fmt.Errorf("expected routable=%t for %s", *e.Routable, e.Path)
	}
	if e.Endpoint != nil {
		if node.Endpoint == nil {
			return fmt.Errorf("expected endpoint %q, %s is not routable", *e.Endpoint, e.Path)
		}
		if *node.Endpoint != *e.Endpoint {
			return fmt.Errorf("expected endpoint %q, got %q", *e.Endpoint, *node.Endpoint)
		}
	}
	return nil
}
