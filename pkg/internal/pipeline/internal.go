package pipeline

import "github.com/PandasDrive/M2T/pkg/internal/types"

func (p *Pipeline[T]) processChannel() {
	defer p.wg.Done()

	in := p.inChan
	done := p.ctx.Done()

	for {
		select {
		case <-done:
			return
		case elem, ok := <-in:
			if !ok {
				return
			}
			p.processElement(elem)
		}
	}
}

func (p *Pipeline[T]) processElement(elem T) {
	if p.ctx.Err() != nil {
		return
	}

	processed, err := p.transformElement(elem)
	if err != nil {
		p.handleError(elem, err)
		return
	}

	select {
	case p.outChan <- processed:
	case <-p.ctx.Done():
	}
}

func (p *Pipeline[T]) transformElement(elem T) (T, error) {
	var err error
	for _, transform := range p.transformations {
		elem, err = transform(elem)
		if err != nil {
			return elem, err
		}
	}
	return elem, nil
}

// handleError reports the original element on the error channel. Best-effort:
// error reporting must not stall the workers.
func (p *Pipeline[T]) handleError(elem T, err error) {
	p.notifyTransformError(err)

	ch := p.errorChan
	if ch == nil {
		return
	}
	select {
	case ch <- types.ElementError[T]{Element: elem, Err: err}:
	default:
	}
}
