package export

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/salesops/hubspot-export/pkg/hubspot"
	"github.com/salesops/hubspot-export/pkg/logging"
)

// Options configures a pipeline run.
type Options struct {
	// Concurrency bounds the association resolution worker pool. Values
	// <= 1 keep resolution fully sequential; higher values resolve deals
	// in parallel without changing the output (order is preserved and the
	// first error aborts the run).
	Concurrency int
}

// Pipeline drives the full deal aggregation flow: search, owner directory,
// association resolution, batch entity loads, and row projection. All
// mutable state (owner cache, dedup sets) is scoped to a single Run call.
type Pipeline struct {
	api         *hubspot.API
	concurrency int
	logger      zerolog.Logger
}

// New creates a pipeline on top of the typed CRM API.
func New(api *hubspot.API, opts Options) *Pipeline {
	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &Pipeline{
		api:         api,
		concurrency: concurrency,
		logger:      logging.NewLogger("export-pipeline"),
	}
}

// dealLinks carries the ordered association ids resolved for one deal.
type dealLinks struct {
	contacts  []hubspot.ContactID
	companies []hubspot.CompanyID
}

// Run executes the pipeline and returns one row per fetched deal, in
// server order. A positive limit caps the search to a single page; limit
// <= 0 fetches every matching deal.
func (p *Pipeline) Run(ctx context.Context, filter hubspot.SearchFilter, limit int) ([]Row, error) {
	start := time.Now()

	deals, err := p.api.SearchDeals(ctx, filter, limit)
	if err != nil {
		return nil, err
	}

	owners, err := hubspot.NewOwnerDirectory(ctx, p.api)
	if err != nil {
		return nil, err
	}

	links, err := p.resolveAssociations(ctx, deals)
	if err != nil {
		return nil, err
	}

	var contactIDs []hubspot.ContactID
	var companyIDs []hubspot.CompanyID
	for _, l := range links {
		contactIDs = append(contactIDs, l.contacts...)
		companyIDs = append(companyIDs, l.companies...)
	}

	contacts, err := p.api.BatchReadContacts(ctx, contactIDs)
	if err != nil {
		return nil, err
	}
	companies, err := p.api.BatchReadCompanies(ctx, companyIDs)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, len(deals))
	for i, d := range deals {
		var firstContact hubspot.ContactID
		if len(links[i].contacts) > 0 {
			firstContact = links[i].contacts[0]
		}
		var firstCompany hubspot.CompanyID
		if len(links[i].companies) > 0 {
			firstCompany = links[i].companies[0]
		}
		rows[i] = projectRow(ctx, d, firstContact, firstCompany, contacts, companies, owners)
	}

	p.logger.Info().
		Int("rows", len(rows)).
		Int("owners", owners.Size()).
		Dur("duration", time.Since(start)).
		Msg("Export pipeline complete")

	return rows, nil
}

// resolveAssociations fetches contact and company associations for every
// deal. With concurrency 1 it runs fully sequential; otherwise a bounded
// worker pool resolves deals in parallel, writing each result to its
// deal's slot so output order matches input order. The first failure
// cancels remaining work and aborts the run.
func (p *Pipeline) resolveAssociations(ctx context.Context, deals []hubspot.Deal) ([]dealLinks, error) {
	links := make([]dealLinks, len(deals))

	if p.concurrency <= 1 {
		for i, d := range deals {
			l, err := p.resolveOne(ctx, d.ID)
			if err != nil {
				return nil, err
			}
			links[i] = l
		}
		return links, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int)
	errs := make(chan error, p.concurrency)

	var wg sync.WaitGroup
	for w := 0; w < p.concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}

				l, err := p.resolveOne(ctx, deals[i].ID)
				if err != nil {
					select {
					case errs <- err:
					default:
					}
					cancel()
					return
				}
				links[i] = l
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range deals {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()

	select {
	case err := <-errs:
		return nil, err
	default:
	}

	return links, nil
}

// resolveOne fetches both relation kinds for a single deal (two calls).
func (p *Pipeline) resolveOne(ctx context.Context, deal hubspot.DealID) (dealLinks, error) {
	contacts, err := p.api.AssociatedContactIDs(ctx, deal)
	if err != nil {
		return dealLinks{}, err
	}
	companies, err := p.api.AssociatedCompanyIDs(ctx, deal)
	if err != nil {
		return dealLinks{}, err
	}
	return dealLinks{contacts: contacts, companies: companies}, nil
}
