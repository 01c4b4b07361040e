/*
Package buildmodel turns a loaded config.Model into the queries the link
resolver needs: resolving an item name to an in-project target and computing
a target's link implementation and link interface for a configuration.

A Project is immutable once built. Link interfaces are a pure function of
(target, configuration), memoized in an InterfaceCache that the caller owns.
The cache is only ever invalidated as a whole via Purge, when the build
description is reloaded, never per query.

Interface rules per target kind:

  - static libraries export public, interface and private items, since a
    consumer linking the archive must also satisfy its private dependencies;
  - shared libraries and executables with exports export public and
    interface items, and list the private items that are shared libraries as
    runtime dependencies (SharedDeps);
  - interface libraries export public and interface items only;
  - imported targets export exactly their declared link interface.
*/
package buildmodel
